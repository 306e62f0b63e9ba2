// Package embedded implements the repository ports on an embedded SQLite database through GORM.
// The store runs on a single connection, so every db.Transaction is a serialised read-check-write unit.
package embedded

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"gorm.io/gorm"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *gorm.DB
}

// mapError translates GORM errors into apperrors sentinels.
func mapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %s references a missing record", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}
