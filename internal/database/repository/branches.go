package repository

import (
	"context"
	"database/sql"
)

// BranchRepo handles branches.
type BranchRepo struct {
	db *sql.DB
}

func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{db: db}
}

const branchSelect = `
	SELECT branch_id, name, city, warehouse_id, country_id, route_distance, delivery
	FROM branch `

func (r *BranchRepo) BranchByID(ctx context.Context, id int64) (Branch, error) {
	return queryOne(ctx, r.db, BranchFromRow, branchSelect+`WHERE branch_id = $1`, id)
}

// DeliveryBranch returns the first delivery-capable branch served by warehouseID.
func (r *BranchRepo) DeliveryBranch(ctx context.Context, warehouseID int64) (Branch, error) {
	return queryOne(ctx, r.db, BranchFromRow,
		branchSelect+`WHERE warehouse_id = $1 AND delivery = $2 ORDER BY route_distance, branch_id`, warehouseID, true)
}
