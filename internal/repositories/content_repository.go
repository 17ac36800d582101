package repositories

import (
	"context"
	"database/sql"
	"time"

	intdb "imperialvip/internal/db"
	"imperialvip/internal/domain/models"
)

type HeroRepository struct {
	DB *sql.DB
}

func (r HeroRepository) list(ctx context.Context, where string) ([]models.HeroSlide, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, image_url, sort_order, is_active, created_at FROM hero_slides`+where+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HeroSlide{}
	for rows.Next() {
		var (
			h       models.HeroSlide
			active  int
			created sql.NullTime
		)
		if err := rows.Scan(&h.ID, &h.ImageURL, &h.SortOrder, &active, &created); err != nil {
			return nil, err
		}
		h.IsActive = active == 1
		h.CreatedAt = intdb.TimePtr(created)
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListActive returns active slides ordered by id.
func (r HeroRepository) ListActive(ctx context.Context) ([]models.HeroSlide, error) {
	return r.list(ctx, ` WHERE is_active = 1`)
}

func (r HeroRepository) ListAll(ctx context.Context) ([]models.HeroSlide, error) {
	return r.list(ctx, "")
}

func (r HeroRepository) Create(ctx context.Context, h models.HeroSlide) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO hero_slides (image_url, sort_order, is_active, created_at) VALUES (?, ?, ?, ?)`,
		h.ImageURL, h.SortOrder, intdb.BoolInt(h.IsActive), intdb.NullTime(h.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r HeroRepository) Update(ctx context.Context, h models.HeroSlide) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE hero_slides SET image_url = ?, sort_order = ?, is_active = ? WHERE id = ?`,
		h.ImageURL, h.SortOrder, intdb.BoolInt(h.IsActive), h.ID)
	return requireAffected(res, err)
}

func (r HeroRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE hero_slides SET is_active = ? WHERE id = ?`, intdb.BoolInt(active), id)
	return requireAffected(res, err)
}

func (r HeroRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = ?`, id)
	return requireAffected(res, err)
}

type GalleryRepository struct {
	DB *sql.DB
}

// ListActive returns active images by sort order; limit <= 0 means all.
func (r GalleryRepository) ListActive(ctx context.Context, limit int) ([]models.GalleryImage, error) {
	query := `
		SELECT id, image_url, COALESCE(title,''), COALESCE(description,''), category, sort_order, is_active, created_at
		FROM gallery_images
		WHERE is_active = 1
		ORDER BY sort_order, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GalleryImage{}
	for rows.Next() {
		var (
			g       models.GalleryImage
			active  int
			created sql.NullTime
		)
		if err := rows.Scan(&g.ID, &g.ImageURL, &g.Title, &g.Description, &g.Category, &g.SortOrder, &active, &created); err != nil {
			return nil, err
		}
		g.IsActive = active == 1
		g.CreatedAt = intdb.TimePtr(created)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r GalleryRepository) Create(ctx context.Context, g models.GalleryImage) (int64, error) {
	if g.Category == "" {
		g.Category = "Genel"
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO gallery_images (image_url, title, description, category, sort_order, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ImageURL, intdb.NullIfEmpty(g.Title), intdb.NullIfEmpty(g.Description), g.Category, g.SortOrder, intdb.BoolInt(g.IsActive), intdb.NullTime(g.CreatedAt))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r GalleryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = ?`, id)
	return requireAffected(res, err)
}

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) ListAll(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, setting_key, setting_value, description, updated_at FROM site_settings ORDER BY setting_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SiteSetting{}
	for rows.Next() {
		var (
			s       models.SiteSetting
			updated sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &updated); err != nil {
			return nil, err
		}
		s.UpdatedAt = intdb.TimePtr(updated)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Upsert writes every key/value pair in one transaction.
func (r SettingsRepository) Upsert(ctx context.Context, values map[string]string, keys []string, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO site_settings (setting_key, setting_value, updated_at)
			VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), updated_at = VALUES(updated_at)`,
			k, values[k], at,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) Insert(ctx context.Context, m models.ContactMessage) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO contacts (full_name, email, phone, subject, message, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		m.FullName, m.Email, m.Phone, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, full_name, email, phone, subject, message, is_read, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactMessage{}
	for rows.Next() {
		var (
			m    models.ContactMessage
			read int
		)
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.Phone, &m.Subject, &m.Message, &read, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.IsRead = read == 1
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r ContactRepository) MarkRead(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE contacts SET is_read = 1 WHERE id = ?`, id)
	return requireAffected(res, err)
}

func (r ContactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return requireAffected(res, err)
}

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) GetByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	var u models.AdminUser
	err := r.DB.QueryRowContext(ctx, `SELECT id, username, password_hash FROM admin_users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	return u, err
}

func (r AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}

func (r AdminRepository) Create(ctx context.Context, username, passwordHash string, at time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO admin_users (username, password_hash, created_at) VALUES (?, ?, ?)`, username, passwordHash, at)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
