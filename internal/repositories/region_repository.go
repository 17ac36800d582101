package repositories

import (
	"context"
	"database/sql"

	intdb "imperialvip/internal/db"
	"imperialvip/internal/domain/models"
)

type RegionRepository struct {
	DB *sql.DB
}

const regionColumns = `
	id, name, COALESCE(name_en,''), COALESCE(description,''), COALESCE(description_en,''),
	COALESCE(image_url,''), price, COALESCE(currency,'EUR'),
	COALESCE(start_point,''), COALESCE(start_point_en,''),
	distance_km, estimated_duration_minutes, sort_order, is_active, created_at, updated_at`

func scanRegion(sc interface{ Scan(...any) error }) (models.Region, error) {
	var (
		rg               models.Region
		dist             sql.NullFloat64
		dur              sql.NullInt64
		active           int
		created, updated sql.NullTime
	)
	err := sc.Scan(
		&rg.ID, &rg.Name, &rg.NameEn, &rg.Description, &rg.DescriptionEn,
		&rg.ImageURL, &rg.Price, &rg.Currency,
		&rg.StartPoint, &rg.StartPointEn,
		&dist, &dur, &rg.SortOrder, &active, &created, &updated,
	)
	if err != nil {
		return rg, err
	}
	rg.DistanceKm = intdb.FloatPtr(dist)
	rg.EstimatedDurationMinutes = intdb.IntPtr(dur)
	rg.IsActive = active == 1
	rg.CreatedAt = intdb.TimePtr(created)
	rg.UpdatedAt = intdb.TimePtr(updated)
	return rg, nil
}

func (r RegionRepository) query(ctx context.Context, tail string) ([]models.Region, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+regionColumns+` FROM regions`+tail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Region{}
	for rows.Next() {
		rg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rg)
	}
	return out, rows.Err()
}

func (r RegionRepository) ListActive(ctx context.Context) ([]models.Region, error) {
	return r.query(ctx, ` WHERE is_active = 1 ORDER BY sort_order, id`)
}

func (r RegionRepository) ListAll(ctx context.Context) ([]models.Region, error) {
	return r.query(ctx, ` ORDER BY sort_order, id`)
}

// ListActiveByName orders active regions alphabetically.
func (r RegionRepository) ListActiveByName(ctx context.Context) ([]models.Region, error) {
	return r.query(ctx, ` WHERE is_active = 1 ORDER BY name, id`)
}

func (r RegionRepository) GetByID(ctx context.Context, id int64) (models.Region, error) {
	return scanRegion(r.DB.QueryRowContext(ctx, `SELECT `+regionColumns+` FROM regions WHERE id = ?`, id))
}

func regionArgs(rg models.Region) []any {
	return []any{
		rg.Name, intdb.NullIfEmpty(rg.NameEn), intdb.NullIfEmpty(rg.Description), intdb.NullIfEmpty(rg.DescriptionEn),
		intdb.NullIfEmpty(rg.ImageURL), rg.Price, intdb.NullIfEmpty(rg.Currency),
		intdb.NullIfEmpty(rg.StartPoint), intdb.NullIfEmpty(rg.StartPointEn),
		intdb.NullFloat(rg.DistanceKm), intdb.NullInt(rg.EstimatedDurationMinutes),
		rg.SortOrder, intdb.BoolInt(rg.IsActive),
	}
}

func (r RegionRepository) Create(ctx context.Context, rg models.Region) (int64, error) {
	args := append(regionArgs(rg), intdb.NullTime(rg.CreatedAt), intdb.NullTime(rg.UpdatedAt))
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO regions (
			name, name_en, description, description_en, image_url, price, currency,
			start_point, start_point_en, distance_km, estimated_duration_minutes,
			sort_order, is_active, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RegionRepository) Update(ctx context.Context, rg models.Region) error {
	args := append(regionArgs(rg), intdb.NullTime(rg.UpdatedAt), rg.ID)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE regions SET
			name = ?, name_en = ?, description = ?, description_en = ?, image_url = ?, price = ?, currency = ?,
			start_point = ?, start_point_en = ?, distance_km = ?, estimated_duration_minutes = ?,
			sort_order = ?, is_active = ?, updated_at = ?
		WHERE id = ?`, args...)
	return requireAffected(res, err)
}

// Delete removes the region; the foreign key nulls reservations.region_id.
func (r RegionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM regions WHERE id = ?`, id)
	return requireAffected(res, err)
}

func (r RegionRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE regions SET is_active = ? WHERE id = ?`, intdb.BoolInt(active), id)
	return requireAffected(res, err)
}
