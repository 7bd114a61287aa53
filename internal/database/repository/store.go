package repository

import (
	"context"
	"database/sql"
)

// Store bundles the repositories over one pool.
type Store struct {
	DB       *sql.DB
	Users    *UserRepo
	Lockers  *LockerRepo
	Branches *BranchRepo
	Packages *PackageRepo
	Guides   *GuideRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:       db,
		Users:    NewUserRepo(db),
		Lockers:  NewLockerRepo(db),
		Branches: NewBranchRepo(db),
		Packages: NewPackageRepo(db),
		Guides:   NewGuideRepo(db),
	}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryAll runs query and builds one T per row.
func queryAll[T any](ctx context.Context, q querier, build func(Row) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	raw, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, row := range raw {
		v, err := build(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// queryOne is queryAll for lookups by key; zero rows is ErrNotFound.
func queryOne[T any](ctx context.Context, q querier, build func(Row) (T, error), query string, args ...any) (T, error) {
	var zero T
	all, err := queryAll(ctx, q, build, query, args...)
	if err != nil {
		return zero, err
	}
	if len(all) == 0 {
		return zero, ErrNotFound
	}
	return all[0], nil
}
