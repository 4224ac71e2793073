// Package db opens the account database connection.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studyhub_backend/internal/feature/account/adapters"
	"studyhub_backend/internal/feature/account/domain/entity"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Opener opens a gorm connection from a DSN. Injectable for testing.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry keeps attempting to connect until timeout elapses. The
// database container may come up after the application does.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to Postgres when DATABASE_URL is set, otherwise to a local
// SQLite file (DB_PATH, default studyhub.db). TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey on both
// drivers.
func OpenDB() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), cfg)
		})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "studyhub.db"
		}
		log.Printf("DATABASE_URL not set, using SQLite at %s", path)
		if db, err = gorm.Open(sqlite.Open(path), cfg); err != nil {
			log.Fatalf("failed to open SQLite database: %v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&entity.Account{},
			&entity.Tag{},
			&entity.Zone{},
			&adapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
