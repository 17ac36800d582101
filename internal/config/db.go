package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// DSN builds the MySQL DSN from DB_* variables.
func DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&clientFoundRows=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		getenv("DB_USER", "root"),
		getenv("DB_PASS", ""),
		getenv("DB_HOST", "127.0.0.1"),
		getenv("DB_PORT", "3306"),
		getenv("DB_NAME", "imperial_vip"),
	)
}

// ConnectDB initializes the shared DB connection (idempotent).
func ConnectDB() *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}

	db, err := sql.Open("mysql", DSN())
	if err != nil {
		log.Fatalf("failed to open DB: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping DB: %v", err)
	}

	DB = db
	log.Println("connected to MySQL")
	return DB
}

// PingDB is used by the health check.
func PingDB(ctx context.Context) error {
	dbMu.Lock()
	db := DB
	dbMu.Unlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
