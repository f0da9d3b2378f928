package advisory

import (
	"context"
	"database/sql"
	"encoding/json"

	"farmadvisor-backend/internal/advisory/engine"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, adv Advisory) error {
	const query = `
INSERT INTO advisories (
    id, user_id,
    temperature, humidity, moisture,
    soil_type, crop_type, fertilizer_name,
    quantity, nitrogen, phosphorous, potassium,
    compatible, compat_reason, alternative,
    quantity_status, quantity_reason,
    risk_score, overall_status, recommendations,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	recs, err := json.Marshal(adv.Recommendations)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		adv.ID,
		adv.UserID,
		adv.Input.Temperature,
		nullableFloatPtr(adv.Input.Humidity),
		nullableFloatPtr(adv.Input.Moisture),
		adv.Input.SoilType,
		adv.Input.CropType,
		adv.Input.FertilizerName,
		adv.Input.Quantity,
		adv.Input.Nitrogen,
		adv.Input.Phosphorous,
		adv.Input.Potassium,
		adv.Compatibility.Compatible,
		adv.Compatibility.Reason,
		nullableString(adv.Compatibility.Alternative),
		string(adv.Quantity.Status),
		adv.Quantity.Reason,
		adv.RiskScore,
		adv.OverallStatus,
		recs,
		adv.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Advisory, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id,
       temperature, humidity, moisture,
       soil_type, crop_type, fertilizer_name,
       quantity, nitrogen, phosphorous, potassium,
       compatible, compat_reason, alternative,
       quantity_status, quantity_reason,
       risk_score, overall_status, recommendations,
       created_at
FROM advisories
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Advisory
	for rows.Next() {
		adv, err := scanAdvisory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, adv)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, advisoryID string) error {
	const query = `DELETE FROM advisories WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, advisoryID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdvisory(row rowScanner) (Advisory, error) {
	var adv Advisory
	var humidity sql.NullFloat64
	var moisture sql.NullFloat64
	var alternative sql.NullString
	var quantityStatus string
	var recs []byte
	err := row.Scan(
		&adv.ID,
		&adv.UserID,
		&adv.Input.Temperature,
		&humidity,
		&moisture,
		&adv.Input.SoilType,
		&adv.Input.CropType,
		&adv.Input.FertilizerName,
		&adv.Input.Quantity,
		&adv.Input.Nitrogen,
		&adv.Input.Phosphorous,
		&adv.Input.Potassium,
		&adv.Compatibility.Compatible,
		&adv.Compatibility.Reason,
		&alternative,
		&quantityStatus,
		&adv.Quantity.Reason,
		&adv.RiskScore,
		&adv.OverallStatus,
		&recs,
		&adv.CreatedAt,
	)
	if err != nil {
		return Advisory{}, err
	}
	if humidity.Valid {
		adv.Input.Humidity = &humidity.Float64
	}
	if moisture.Valid {
		adv.Input.Moisture = &moisture.Float64
	}
	if alternative.Valid {
		adv.Compatibility.Alternative = alternative.String
	}
	adv.Quantity.Status = engine.QuantityStatus(quantityStatus)
	if len(recs) > 0 {
		if err := json.Unmarshal(recs, &adv.Recommendations); err != nil {
			return Advisory{}, err
		}
	}
	return adv, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloatPtr(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
