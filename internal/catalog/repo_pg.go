package catalog

import (
	"context"
	"database/sql"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) List(ctx context.Context, kind string) ([]string, error) {
	if !ValidKind(kind) {
		return nil, ErrUnknownKind
	}
	const query = `SELECT value FROM catalog_options WHERE kind = $1 ORDER BY value`
	rows, err := r.DB.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

func (r *PGRepo) Add(ctx context.Context, kind, value string) error {
	if !ValidKind(kind) {
		return ErrUnknownKind
	}
	const query = `INSERT INTO catalog_options (kind, value) VALUES ($1, $2)`
	_, err := r.DB.ExecContext(ctx, query, kind, value)
	if err != nil && strings.Contains(err.Error(), "catalog_options_pkey") {
		return ErrExists
	}
	return err
}

func (r *PGRepo) Remove(ctx context.Context, kind, value string) error {
	if !ValidKind(kind) {
		return ErrUnknownKind
	}
	const query = `DELETE FROM catalog_options WHERE kind = $1 AND value = $2`
	res, err := r.DB.ExecContext(ctx, query, kind, value)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
