package repository

import (
	"context"
	"database/sql"
)

// PackageRepo handles packages.
type PackageRepo struct {
	db *sql.DB
}

func NewPackageRepo(db *sql.DB) *PackageRepo {
	return &PackageRepo{db: db}
}

const packageSelect = `
	SELECT tracking_number, client, locker_id, branch_id, guide_number, weight, content, created_at
	FROM package `

func (r *PackageRepo) PackagesByLocker(ctx context.Context, lockerID int64) ([]Package, error) {
	return queryAll(ctx, r.db, PackageFromRow,
		packageSelect+`WHERE locker_id = $1 ORDER BY created_at DESC, tracking_number`, lockerID)
}

func (r *PackageRepo) PackagesByGuide(ctx context.Context, guide string) ([]Package, error) {
	return queryAll(ctx, r.db, PackageFromRow,
		packageSelect+`WHERE guide_number = $1 ORDER BY tracking_number`, guide)
}
