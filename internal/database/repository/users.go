package repository

import (
	"context"
	"database/sql"
)

// UserRepo looks up the two account kinds.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) ClientByUsername(ctx context.Context, username string) (Client, error) {
	return queryOne(ctx, r.db, ClientFromRow, `
	SELECT username, first_name, last_name, password_hash, country_id, branch_id
	FROM client WHERE username = $1`, username)
}

func (r *UserRepo) PkgAdminByUsername(ctx context.Context, username string) (PkgAdmin, error) {
	return queryOne(ctx, r.db, PkgAdminFromRow, `
	SELECT username, first_name, last_name, password_hash, branch_id
	FROM pkgadmin WHERE username = $1`, username)
}

// ClientUsernames lists every client, for recipient suggestions.
func (r *UserRepo) ClientUsernames(ctx context.Context) ([]string, error) {
	return queryAll(ctx, r.db, func(row Row) (string, error) {
		rr := &rowReader{row: row}
		return rr.string("username"), rr.err
	}, `SELECT username FROM client ORDER BY username`)
}
