package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "imperialvip/internal/db"
	"imperialvip/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `
	id, name, COALESCE(type,''), COALESCE(brand,''), COALESCE(model,''),
	passenger_capacity, luggage_capacity,
	COALESCE(description,''), COALESCE(features,''), COALESCE(image_url,''),
	price_per_km, price_per_km_usd, price_per_km_try,
	minimum_price, minimum_price_usd, minimum_price_try,
	COALESCE(currency,'EUR'), is_active, sort_order, created_at`

func scanVehicle(sc interface{ Scan(...any) error }) (models.Vehicle, error) {
	var (
		v                            models.Vehicle
		kmUSD, kmTRY, minUSD, minTRY sql.NullFloat64
		active                       int
		created                      sql.NullTime
	)
	err := sc.Scan(
		&v.ID, &v.Name, &v.Type, &v.Brand, &v.Model,
		&v.PassengerCapacity, &v.LuggageCapacity,
		&v.Description, &v.Features, &v.ImageURL,
		&v.PricePerKm, &kmUSD, &kmTRY,
		&v.MinimumPrice, &minUSD, &minTRY,
		&v.Currency, &active, &v.SortOrder, &created,
	)
	if err != nil {
		return v, err
	}
	v.PricePerKmUSD = intdb.FloatPtr(kmUSD)
	v.PricePerKmTRY = intdb.FloatPtr(kmTRY)
	v.MinimumPriceUSD = intdb.FloatPtr(minUSD)
	v.MinimumPriceTRY = intdb.FloatPtr(minTRY)
	v.IsActive = active == 1
	v.CreatedAt = intdb.TimePtr(created)
	v.Images = []models.VehicleImage{}
	return v, nil
}

func (r VehicleRepository) list(ctx context.Context, where string) ([]models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles`+where+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns active vehicles by sort order, images included.
func (r VehicleRepository) ListActive(ctx context.Context) ([]models.Vehicle, error) {
	return r.list(ctx, ` WHERE is_active = 1`)
}

func (r VehicleRepository) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	return r.list(ctx, "")
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	v, err := scanVehicle(r.DB.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id))
	if err != nil {
		return v, err
	}
	list := []models.Vehicle{v}
	if err := r.attachImages(ctx, list); err != nil {
		return v, err
	}
	return list[0], nil
}

func (r VehicleRepository) attachImages(ctx context.Context, vehicles []models.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}
	idx := make(map[int64]int, len(vehicles))
	args := make([]any, 0, len(vehicles))
	marks := make([]string, 0, len(vehicles))
	for i, v := range vehicles {
		idx[v.ID] = i
		args = append(args, v.ID)
		marks = append(marks, "?")
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, vehicle_id, image_url, sort_order
		FROM vehicle_images
		WHERE vehicle_id IN (`+strings.Join(marks, ",")+`)
		ORDER BY sort_order, id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var img models.VehicleImage
		if err := rows.Scan(&img.ID, &img.VehicleID, &img.ImageURL, &img.SortOrder); err != nil {
			return err
		}
		if i, ok := idx[img.VehicleID]; ok {
			vehicles[i].Images = append(vehicles[i].Images, img)
		}
	}
	return rows.Err()
}

func vehicleArgs(v models.Vehicle) []any {
	return []any{
		v.Name, intdb.NullIfEmpty(v.Type), intdb.NullIfEmpty(v.Brand), intdb.NullIfEmpty(v.Model),
		v.PassengerCapacity, v.LuggageCapacity,
		intdb.NullIfEmpty(v.Description), intdb.NullIfEmpty(v.Features), intdb.NullIfEmpty(v.ImageURL),
		v.PricePerKm, intdb.NullFloat(v.PricePerKmUSD), intdb.NullFloat(v.PricePerKmTRY),
		v.MinimumPrice, intdb.NullFloat(v.MinimumPriceUSD), intdb.NullFloat(v.MinimumPriceTRY),
		intdb.NullIfEmpty(v.Currency), intdb.BoolInt(v.IsActive), v.SortOrder,
	}
}

func (r VehicleRepository) Create(ctx context.Context, v models.Vehicle) (int64, error) {
	args := append(vehicleArgs(v), intdb.NullTime(v.CreatedAt))
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicles (
			name, type, brand, model, passenger_capacity, luggage_capacity,
			description, features, image_url,
			price_per_km, price_per_km_usd, price_per_km_try,
			minimum_price, minimum_price_usd, minimum_price_try,
			currency, is_active, sort_order, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	args := append(vehicleArgs(v), v.ID)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles SET
			name = ?, type = ?, brand = ?, model = ?, passenger_capacity = ?, luggage_capacity = ?,
			description = ?, features = ?, image_url = ?,
			price_per_km = ?, price_per_km_usd = ?, price_per_km_try = ?,
			minimum_price = ?, minimum_price_usd = ?, minimum_price_try = ?,
			currency = ?, is_active = ?, sort_order = ?
		WHERE id = ?`, args...)
	return requireAffected(res, err)
}

func (r VehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	return requireAffected(res, err)
}

func (r VehicleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE vehicles SET is_active = ? WHERE id = ?`, intdb.BoolInt(active), id)
	return requireAffected(res, err)
}

func (r VehicleRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE vehicles SET image_url = ? WHERE id = ?`, url, id)
	return err
}

func (r VehicleRepository) AddImage(ctx context.Context, vehicleID int64, url string, sortOrder int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO vehicle_images (vehicle_id, image_url, sort_order) VALUES (?, ?, ?)`, vehicleID, url, sortOrder)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) DeleteImage(ctx context.Context, vehicleID, imageID int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicle_images WHERE id = ? AND vehicle_id = ?`, imageID, vehicleID)
	return requireAffected(res, err)
}

// requireAffected maps "no row matched" to sql.ErrNoRows. The DSN sets
// clientFoundRows, so an UPDATE that changes nothing still counts its row.
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
