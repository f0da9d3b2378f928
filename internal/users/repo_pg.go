package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, password_hash, full_name, is_admin, soil_type, farm_size_ha, location, primary_crops, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, password_hash, full_name, is_admin, soil_type, farm_size_ha, location, primary_crops, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		nullableString(user.FullName),
		user.IsAdmin,
		nullableString(user.Farm.SoilType),
		nullableFloat(user.Farm.FarmSizeHa),
		nullableString(user.Farm.Location),
		nullableString(joinCrops(user.Farm.PrimaryCrops)),
	)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(email)))
}

func (r *PGRepo) UpdateFarm(ctx context.Context, userID string, farm FarmDetails) error {
	const query = `
UPDATE users
SET soil_type = $1, farm_size_ha = $2, location = $3, primary_crops = $4, updated_at = now()
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query,
		nullableString(farm.SoilType),
		nullableFloat(farm.FarmSizeHa),
		nullableString(farm.Location),
		nullableString(joinCrops(farm.PrimaryCrops)),
		userID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var fullName sql.NullString
	var soilType sql.NullString
	var farmSize sql.NullFloat64
	var location sql.NullString
	var primaryCrops sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&fullName,
		&user.IsAdmin,
		&soilType,
		&farmSize,
		&location,
		&primaryCrops,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	if soilType.Valid {
		user.Farm.SoilType = soilType.String
	}
	if farmSize.Valid {
		user.Farm.FarmSizeHa = farmSize.Float64
	}
	if location.Valid {
		user.Farm.Location = location.String
	}
	if primaryCrops.Valid {
		user.Farm.PrimaryCrops = splitCrops(primaryCrops.String)
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func joinCrops(crops []string) string {
	var out []string
	for _, crop := range crops {
		if trimmed := strings.TrimSpace(crop); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ",")
}

func splitCrops(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
