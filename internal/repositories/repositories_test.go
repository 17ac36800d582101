package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var vehicleCols = []string{
	"id", "name", "type", "brand", "model", "passenger_capacity", "luggage_capacity",
	"description", "features", "image_url", "price_per_km", "price_per_km_usd", "price_per_km_try",
	"minimum_price", "minimum_price_usd", "minimum_price_try", "currency", "is_active", "sort_order", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestVehicleListActiveAttachesImages(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM vehicles WHERE is_active = 1 ORDER BY sort_order").
		WillReturnRows(sqlmock.NewRows(vehicleCols).
			AddRow(1, "Vito", "Minivan", "Mercedes", "Vito", 7, 7, "", "", "", 0.0, nil, nil, 85.0, nil, nil, "EUR", 1, 1, nil).
			AddRow(2, "Sprinter", "", "", "", 14, 14, "", "", "/img/s.jpg", 0.0, nil, nil, 120.0, nil, nil, "EUR", 1, 2, nil))
	mock.ExpectQuery("FROM vehicle_images").WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "image_url", "sort_order"}).
			AddRow(10, 1, "/uploads/vehicles/a.jpg", 0).
			AddRow(11, 1, "/uploads/vehicles/b.jpg", 1))

	list, err := VehicleRepository{DB: db}.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(list))
	}
	if len(list[0].Images) != 2 || len(list[1].Images) != 0 {
		t.Fatalf("images not attached correctly: %d / %d", len(list[0].Images), len(list[1].Images))
	}
	if list[0].MinimumPrice != 85 || !list[0].IsActive || list[0].PricePerKmUSD != nil {
		t.Fatalf("unexpected scan result %+v", list[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRateUpsertAllIsTransactional(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO currency_rates").WithArgs("TRY", 38.5, at).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO currency_rates").WithArgs("USD", 1.05, at).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO currency_rates").WithArgs("GBP", 0.83, at).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := RateRepository{DB: db}.UpsertAll(context.Background(), []models.CurrencyRate{
		{CurrencyCode: "TRY", Rate: 38.5},
		{CurrencyCode: "USD", Rate: 1.05},
		{CurrencyCode: "GBP", Rate: 0.83},
	}, at)
	if err == nil {
		t.Fatalf("expected error from third upsert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationUpdateStatusNotFound(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec("UPDATE reservations SET").
		WithArgs(int(domain.StatusCancelled), now, nil, nil, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := ReservationRepository{DB: db}.UpdateStatus(context.Background(), 99, domain.StatusCancelled, nil, now, nil)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if !domain.IsNotFound(TranslateError("reservation", err)) {
		t.Fatalf("translated error should be not found")
	}
}

func TestRegionDeleteLeavesReservationsToForeignKey(t *testing.T) {
	db, mock := newMock(t)

	// only the region row is deleted; ON DELETE SET NULL handles reservations
	mock.ExpectExec("DELETE FROM regions WHERE id = \\?").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (RegionRepository{DB: db}).Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationListFiltersByStatus(t *testing.T) {
	db, mock := newMock(t)
	status := domain.StatusPending

	mock.ExpectQuery("FROM reservations WHERE status = \\? ORDER BY created_at DESC").
		WithArgs(0, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// an empty result never reaches Scan, so the single column is enough
	list, err := ReservationRepository{DB: db}.List(context.Background(), &status, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
