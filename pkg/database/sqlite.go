package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/vault_ledger/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// partialIndexes back the per-user uniqueness rules that GORM tags cannot express.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vaults_user_category_active
		ON vaults (user_id, category) WHERE is_active AND category <> 'Custom'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vaults_user_default_active
		ON vaults (user_id) WHERE is_active AND is_default_instant_pay`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vaults_user_emergency_active
		ON vaults (user_id) WHERE is_active AND is_emergency`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bank_accounts_user_primary
		ON bank_accounts (user_id) WHERE is_primary`,
}

// NewSQLite opens the embedded store at path (":memory:" for a throwaway database),
// applies the pragmas the ledger relies on and migrates the schema.
func NewSQLite(path string, logSQL bool) (*gorm.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gormLogger := logger.Default
	if !logSQL {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// One connection serialises writers; every store transaction is a read-check-write unit.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	slog.Info("Embedded SQLite store ready.", slog.String("path", path))
	return db, nil
}

// AutoMigrate runs schema migrations for all embedded store models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Vault{},
		&models.Transaction{},
		&models.Reassignment{},
		&models.BankAccount{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// CloseSQLite closes the embedded store.
func CloseSQLite(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
		slog.Info("Embedded SQLite store closed.")
	}
}
