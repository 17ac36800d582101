package repositories

import (
	"context"
	"database/sql"
	"time"

	intdb "imperialvip/internal/db"
	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

const reservationColumns = `
	id, customer_name, customer_phone, customer_email,
	pickup_location_type, pickup_location, pickup_location_detail,
	dropoff_location_type, dropoff_location, dropoff_location_detail,
	transfer_date, transfer_time, region_id, flight_number, airline_company, hotel_name,
	is_return_transfer, return_transfer_date, return_transfer_time, return_flight_number,
	passenger_count, number_of_adults, number_of_children, child_seat_count, luggage_count,
	child_names, language, vehicle_id, additional_passenger_names,
	distance_km, estimated_price, currency, COALESCE(notes,''),
	status, COALESCE(admin_notes,''), created_at, updated_at, confirmed_at`

func scanReservation(sc interface{ Scan(...any) error }) (models.Reservation, error) {
	var (
		m                                   models.Reservation
		transferDate, returnDate            sql.NullTime
		regionID, vehicleID                 sql.NullInt64
		paxCount, adults, children, seats   sql.NullInt64
		luggage                             sql.NullInt64
		distance, price                     sql.NullFloat64
		isReturn, status, pickupT, dropoffT int
		created, updated, confirmed         sql.NullTime
	)
	err := sc.Scan(
		&m.ID, &m.CustomerName, &m.CustomerPhone, &m.CustomerEmail,
		&pickupT, &m.PickupLocation, &m.PickupLocationDetail,
		&dropoffT, &m.DropoffLocation, &m.DropoffLocationDetail,
		&transferDate, &m.TransferTime, &regionID, &m.FlightNumber, &m.AirlineCompany, &m.HotelName,
		&isReturn, &returnDate, &m.ReturnTransferTime, &m.ReturnFlightNumber,
		&paxCount, &adults, &children, &seats, &luggage,
		&m.ChildNames, &m.Language, &vehicleID, &m.AdditionalPassengerNames,
		&distance, &price, &m.Currency, &m.Notes,
		&status, &m.AdminNotes, &created, &updated, &confirmed,
	)
	if err != nil {
		return m, err
	}
	m.PickupLocationType = domain.LocationType(pickupT)
	m.DropoffLocationType = domain.LocationType(dropoffT)
	m.TransferDate = intdb.TimePtr(transferDate)
	m.RegionID = intdb.Int64Ptr(regionID)
	m.IsReturnTransfer = isReturn == 1
	m.ReturnTransferDate = intdb.TimePtr(returnDate)
	m.PassengerCount = intdb.IntPtr(paxCount)
	m.NumberOfAdults = intdb.IntPtr(adults)
	m.NumberOfChildren = intdb.IntPtr(children)
	m.ChildSeatCount = intdb.IntPtr(seats)
	m.LuggageCount = intdb.IntPtr(luggage)
	m.VehicleID = intdb.Int64Ptr(vehicleID)
	m.DistanceKm = intdb.FloatPtr(distance)
	m.EstimatedPrice = intdb.FloatPtr(price)
	m.Status = domain.ReservationStatus(status)
	m.CreatedAt = intdb.TimePtr(created)
	m.UpdatedAt = intdb.TimePtr(updated)
	m.ConfirmedAt = intdb.TimePtr(confirmed)
	return m, nil
}

// Insert persists a new reservation and returns its id.
func (r ReservationRepository) Insert(ctx context.Context, m models.Reservation) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reservations (
			customer_name, customer_phone, customer_email,
			pickup_location_type, pickup_location, pickup_location_detail,
			dropoff_location_type, dropoff_location, dropoff_location_detail,
			transfer_date, transfer_time, region_id, flight_number, airline_company, hotel_name,
			is_return_transfer, return_transfer_date, return_transfer_time, return_flight_number,
			passenger_count, number_of_adults, number_of_children, child_seat_count, luggage_count,
			child_names, language, vehicle_id, additional_passenger_names,
			distance_km, estimated_price, currency, notes,
			status, admin_notes, created_at, updated_at, confirmed_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.CustomerName, m.CustomerPhone, m.CustomerEmail,
		int(m.PickupLocationType), m.PickupLocation, m.PickupLocationDetail,
		int(m.DropoffLocationType), m.DropoffLocation, m.DropoffLocationDetail,
		intdb.NullTime(m.TransferDate), m.TransferTime, intdb.NullInt64(m.RegionID), m.FlightNumber, m.AirlineCompany, m.HotelName,
		intdb.BoolInt(m.IsReturnTransfer), intdb.NullTime(m.ReturnTransferDate), m.ReturnTransferTime, m.ReturnFlightNumber,
		intdb.NullInt(m.PassengerCount), intdb.NullInt(m.NumberOfAdults), intdb.NullInt(m.NumberOfChildren), intdb.NullInt(m.ChildSeatCount), intdb.NullInt(m.LuggageCount),
		m.ChildNames, m.Language, intdb.NullInt64(m.VehicleID), m.AdditionalPassengerNames,
		intdb.NullFloat(m.DistanceKm), intdb.NullFloat(m.EstimatedPrice), m.Currency, m.Notes,
		int(m.Status), m.AdminNotes, intdb.NullTime(m.CreatedAt), intdb.NullTime(m.UpdatedAt), intdb.NullTime(m.ConfirmedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ReservationRepository) GetByID(ctx context.Context, id int64) (models.Reservation, error) {
	return scanReservation(r.DB.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
}

// List returns the newest reservations first, optionally filtered by status.
func (r ReservationRepository) List(ctx context.Context, status *domain.ReservationStatus, limit int) ([]models.Reservation, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `SELECT ` + reservationColumns + ` FROM reservations`
	args := []any{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, int(*status))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateStatus writes status and updated_at; adminNotes and confirmedAt are
// left untouched when nil.
func (r ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminNotes *string, updatedAt time.Time, confirmedAt *time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE reservations SET
			status = ?,
			updated_at = ?,
			admin_notes = COALESCE(?, admin_notes),
			confirmed_at = COALESCE(?, confirmed_at)
		WHERE id = ?`,
		int(status), updatedAt, intdb.NullString(adminNotes), intdb.NullTime(confirmedAt), id,
	)
	return requireAffected(res, err)
}

func (r ReservationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return requireAffected(res, err)
}

// CountByStatus feeds the admin dashboard.
func (r ReservationRepository) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[domain.ReservationStatus]int{}
	for rows.Next() {
		var s, n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[domain.ReservationStatus(s)] = n
	}
	return out, rows.Err()
}
