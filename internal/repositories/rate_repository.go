package repositories

import (
	"context"
	"database/sql"
	"time"

	"imperialvip/internal/domain/models"
)

type RateRepository struct {
	DB *sql.DB
}

func (r RateRepository) List(ctx context.Context) ([]models.CurrencyRate, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, currency_code, rate, updated_at FROM currency_rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.CurrencyRate{}
	for rows.Next() {
		var cr models.CurrencyRate
		if err := rows.Scan(&cr.ID, &cr.CurrencyCode, &cr.Rate, &cr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

// UpsertAll writes every rate in one transaction, stamping each row with at.
func (r RateRepository) UpsertAll(ctx context.Context, rates []models.CurrencyRate, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, cr := range rates {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO currency_rates (currency_code, rate, updated_at)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE rate = VALUES(rate), updated_at = VALUES(updated_at)`,
			cr.CurrencyCode, cr.Rate, at,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
