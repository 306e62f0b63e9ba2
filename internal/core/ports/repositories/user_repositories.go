package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken mobile number returns ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// RecordLoginFailure stores the failed attempt count and an optional lockout end.
	RecordLoginFailure(ctx context.Context, userID string, attempts int, lockoutUntil *time.Time, now time.Time) error

	// ResetLoginFailures clears attempts and any lockout.
	ResetLoginFailures(ctx context.Context, userID string, now time.Time) error

	UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
