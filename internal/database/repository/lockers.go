package repository

import (
	"context"
	"database/sql"
)

// LockerRepo reads lockers joined with their country and warehouse.
type LockerRepo struct {
	db *sql.DB
}

func NewLockerRepo(db *sql.DB) *LockerRepo {
	return &LockerRepo{db: db}
}

const lockerSelect = `
	SELECT l.locker_id, l.client, l.country_id, c.name AS country_name,
	 l.warehouse_id, w.building, w.city AS warehouse_city, w.region,
	 COUNT(p.tracking_number) AS package_count,
	 COALESCE(SUM(p.weight), 0) AS package_weight
	FROM locker l
	JOIN country c ON c.country_id = l.country_id
	JOIN warehouse w ON w.warehouse_id = l.warehouse_id
	LEFT JOIN package p ON p.locker_id = l.locker_id
	`

const lockerGroup = `
	GROUP BY l.locker_id, l.client, l.country_id, c.name, l.warehouse_id, w.building, w.city, w.region
	`

func (r *LockerRepo) LockerByID(ctx context.Context, id int64) (Locker, error) {
	return queryOne(ctx, r.db, LockerFromRow, lockerSelect+`WHERE l.locker_id = $1`+lockerGroup, id)
}

// LockersByClient returns the client's lockers, fullest first.
func (r *LockerRepo) LockersByClient(ctx context.Context, username string) ([]Locker, error) {
	return queryAll(ctx, r.db, LockerFromRow,
		lockerSelect+`WHERE l.client = $1`+lockerGroup+`ORDER BY package_count DESC, l.locker_id`, username)
}
