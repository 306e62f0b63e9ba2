package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, full_name, mobile_number, email, pin_hash, failed_attempts, lockout_until, created_at, last_updated_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.User, error) {
	var m models.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1;`, arg).Scan(
		&m.UserID,
		&m.FullName,
		&m.MobileNumber,
		&m.Email,
		&m.PINHash,
		&m.FailedAttempts,
		&m.LockoutUntil,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "%s", what)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user "+userID, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return r.findOne(ctx, "user with that mobile number", "mobile_number", mobile)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, m.UserID, m.FullName, m.MobileNumber, m.Email, m.PINHash, m.FailedAttempts, m.LockoutUntil, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save user %s", m.UserID)
}

func (r *PgxUserRepository) exec(ctx context.Context, userID, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

func (r *PgxUserRepository) RecordLoginFailure(ctx context.Context, userID string, attempts int, lockoutUntil *time.Time, now time.Time) error {
	return r.exec(ctx, userID, `
		UPDATE users SET failed_attempts = $2, lockout_until = $3, last_updated_at = $4 WHERE user_id = $1;
	`, userID, attempts, lockoutUntil, now)
}

func (r *PgxUserRepository) ResetLoginFailures(ctx context.Context, userID string, now time.Time) error {
	return r.exec(ctx, userID, `
		UPDATE users SET failed_attempts = 0, lockout_until = NULL, last_updated_at = $2 WHERE user_id = $1;
	`, userID, now)
}

func (r *PgxUserRepository) UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error {
	return r.exec(ctx, userID, `
		UPDATE users SET pin_hash = $2, last_updated_at = $3 WHERE user_id = $1;
	`, userID, pinHash, now)
}
