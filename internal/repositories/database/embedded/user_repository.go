package embedded

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	BaseRepository
}

func newGormUserRepository(db *gorm.DB) portsrepo.UserRepositoryFacade {
	return &GormUserRepository{BaseRepository{DB: db}}
}

var _ portsrepo.UserRepositoryFacade = (*GormUserRepository)(nil)

func (r *GormUserRepository) first(ctx context.Context, what, query string, arg any) (*domain.User, error) {
	var m models.User
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, mapError(err, "%s", what)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *GormUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.first(ctx, "user "+userID, "user_id = ?", userID)
}

func (r *GormUserRepository) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return r.first(ctx, "user with that mobile number", "mobile_number = ?", mobile)
}

func (r *GormUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	return mapError(r.DB.WithContext(ctx).Create(&m).Error, "save user %s", m.UserID)
}

func (r *GormUserRepository) update(ctx context.Context, userID string, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

func (r *GormUserRepository) RecordLoginFailure(ctx context.Context, userID string, attempts int, lockoutUntil *time.Time, now time.Time) error {
	return r.update(ctx, userID, map[string]any{
		"failed_attempts": attempts,
		"lockout_until":   lockoutUntil,
		"last_updated_at": now,
	})
}

func (r *GormUserRepository) ResetLoginFailures(ctx context.Context, userID string, now time.Time) error {
	return r.update(ctx, userID, map[string]any{
		"failed_attempts": 0,
		"lockout_until":   nil,
		"last_updated_at": now,
	})
}

func (r *GormUserRepository) UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error {
	return r.update(ctx, userID, map[string]any{
		"pin_hash":        pinHash,
		"last_updated_at": now,
	})
}
