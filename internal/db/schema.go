package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS currency_rates (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		currency_code VARCHAR(3) NOT NULL,
		rate DECIMAL(18,6) NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_currency_rates_code (currency_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		type VARCHAR(100) NULL,
		brand VARCHAR(100) NULL,
		model VARCHAR(100) NULL,
		passenger_capacity INT NOT NULL DEFAULT 0,
		luggage_capacity INT NOT NULL DEFAULT 0,
		description TEXT NULL,
		features TEXT NULL,
		image_url VARCHAR(500) NULL,
		price_per_km DECIMAL(18,2) NOT NULL DEFAULT 0,
		price_per_km_usd DECIMAL(18,2) NULL,
		price_per_km_try DECIMAL(18,2) NULL,
		minimum_price DECIMAL(18,2) NOT NULL DEFAULT 0,
		minimum_price_usd DECIMAL(18,2) NULL,
		minimum_price_try DECIMAL(18,2) NULL,
		currency VARCHAR(3) NULL,
		is_active TINYINT NOT NULL DEFAULT 1,
		sort_order INT NOT NULL DEFAULT 0,
		created_at DATETIME NULL,
		KEY ix_vehicles_active_sort (is_active, sort_order)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS vehicle_images (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		vehicle_id BIGINT NOT NULL,
		image_url VARCHAR(500) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		CONSTRAINT fk_vehicle_images_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS regions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		name_en VARCHAR(200) NULL,
		description TEXT NULL,
		description_en TEXT NULL,
		image_url VARCHAR(500) NULL,
		price DECIMAL(18,2) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NULL,
		start_point VARCHAR(200) NULL,
		start_point_en VARCHAR(200) NULL,
		distance_km DECIMAL(10,2) NULL,
		estimated_duration_minutes INT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		is_active TINYINT NOT NULL DEFAULT 1,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,
		KEY ix_regions_active_sort (is_active, sort_order)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_name VARCHAR(200) NOT NULL,
		customer_phone VARCHAR(50) NOT NULL,
		customer_email VARCHAR(200) NOT NULL DEFAULT '',
		pickup_location_type INT NOT NULL DEFAULT 0,
		pickup_location VARCHAR(500) NOT NULL,
		pickup_location_detail VARCHAR(500) NOT NULL DEFAULT '',
		dropoff_location_type INT NOT NULL DEFAULT 0,
		dropoff_location VARCHAR(500) NOT NULL,
		dropoff_location_detail VARCHAR(500) NOT NULL DEFAULT '',
		transfer_date DATE NULL,
		transfer_time VARCHAR(10) NOT NULL DEFAULT '',
		region_id BIGINT NULL,
		flight_number VARCHAR(50) NOT NULL DEFAULT '',
		airline_company VARCHAR(100) NOT NULL DEFAULT '',
		hotel_name VARCHAR(200) NOT NULL DEFAULT '',
		is_return_transfer TINYINT NOT NULL DEFAULT 0,
		return_transfer_date DATE NULL,
		return_transfer_time VARCHAR(10) NOT NULL DEFAULT '',
		return_flight_number VARCHAR(50) NOT NULL DEFAULT '',
		passenger_count INT NULL,
		number_of_adults INT NULL,
		number_of_children INT NULL,
		child_seat_count INT NULL,
		luggage_count INT NULL,
		child_names VARCHAR(500) NOT NULL DEFAULT '',
		language VARCHAR(5) NOT NULL DEFAULT 'en',
		vehicle_id BIGINT NULL,
		additional_passenger_names VARCHAR(1000) NOT NULL DEFAULT '',
		distance_km DECIMAL(10,2) NULL,
		estimated_price DECIMAL(18,2) NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		notes TEXT NULL,
		status INT NOT NULL DEFAULT 0,
		admin_notes TEXT NULL,
		created_at DATETIME NULL,
		updated_at DATETIME NULL,
		confirmed_at DATETIME NULL,
		KEY ix_reservations_status_created (status, created_at),
		KEY ix_reservations_transfer_date (transfer_date),
		CONSTRAINT fk_reservations_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE RESTRICT,
		CONSTRAINT fk_reservations_region FOREIGN KEY (region_id) REFERENCES regions(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS hero_slides (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		image_url VARCHAR(500) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		is_active TINYINT NOT NULL DEFAULT 1,
		created_at DATETIME NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS gallery_images (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		image_url VARCHAR(500) NOT NULL,
		title VARCHAR(200) NULL,
		description TEXT NULL,
		category VARCHAR(100) NOT NULL DEFAULT 'Genel',
		sort_order INT NOT NULL DEFAULT 0,
		is_active TINYINT NOT NULL DEFAULT 1,
		created_at DATETIME NULL,
		KEY ix_gallery_active_sort (is_active, sort_order)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS site_settings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		setting_key VARCHAR(150) NOT NULL,
		setting_value TEXT NOT NULL,
		description VARCHAR(500) NOT NULL DEFAULT '',
		updated_at DATETIME NULL,
		UNIQUE KEY uq_site_settings_key (setting_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(200) NOT NULL,
		email VARCHAR(200) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		subject VARCHAR(300) NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		is_read TINYINT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		KEY ix_contacts_is_read (is_read),
		KEY ix_contacts_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		password_hash VARCHAR(200) NOT NULL,
		created_at DATETIME NULL,
		UNIQUE KEY uq_admin_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
