package embedded

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormVaultRepository struct {
	BaseRepository
}

func newGormVaultRepository(db *gorm.DB) portsrepo.VaultRepositoryFacade {
	return &GormVaultRepository{BaseRepository{DB: db}}
}

var _ portsrepo.VaultRepositoryFacade = (*GormVaultRepository)(nil)

func (r *GormVaultRepository) activeVaults(ctx context.Context, userID string) ([]models.Vault, error) {
	var ms []models.Vault
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC, vault_id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query vaults: %w", err)
	}
	return ms, nil
}

func (r *GormVaultRepository) first(ctx context.Context, what string, query string, args ...any) (*domain.Vault, error) {
	var m models.Vault
	if err := r.DB.WithContext(ctx).Where(query, args...).Order("created_at").First(&m).Error; err != nil {
		return nil, mapError(err, "%s", what)
	}
	v := mapping.ToDomainVault(m)
	return &v, nil
}

func (r *GormVaultRepository) SaveVault(ctx context.Context, vault domain.Vault) error {
	m := mapping.ToModelVault(vault)
	return mapError(r.DB.WithContext(ctx).Create(&m).Error, "save vault %s", m.VaultID)
}

func (r *GormVaultRepository) FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error) {
	return r.first(ctx, "vault "+vaultID, "vault_id = ?", vaultID)
}

func (r *GormVaultRepository) ListVaultsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var ms []models.Vault
	if err := q.Order("created_at DESC, vault_id DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	return mapping.ToDomainVaultSlice(ms), nil
}

func (r *GormVaultRepository) FindDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return r.first(ctx, "default instant pay vault",
		"user_id = ? AND is_active = ? AND is_default_instant_pay = ?", userID, true, true)
}

func (r *GormVaultRepository) FindVaultByCategory(ctx context.Context, userID string, category domain.VaultCategory) (*domain.Vault, error) {
	return r.first(ctx, "vault with category "+string(category),
		"user_id = ? AND is_active = ? AND category = ?", userID, true, string(category))
}

func (r *GormVaultRepository) FindEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return r.first(ctx, "emergency vault",
		"user_id = ? AND is_active = ? AND is_emergency = ?", userID, true, true)
}

func (r *GormVaultRepository) CategoryExists(ctx context.Context, userID string, category domain.VaultCategory) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Vault{}).
		Where("user_id = ? AND is_active = ? AND category = ?", userID, true, string(category)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vault category: %w", err)
	}
	return count > 0, nil
}

func (r *GormVaultRepository) CountActiveVaults(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Vault{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vaults: %w", err)
	}
	return int(count), nil
}

// FindLowBalanceVaults filters in Go since money is stored as exact decimal text.
func (r *GormVaultRepository) FindLowBalanceVaults(ctx context.Context, userID string, threshold decimal.Decimal) ([]domain.Vault, error) {
	ms, err := r.activeVaults(ctx, userID)
	if err != nil {
		return nil, err
	}
	low := []domain.Vault{}
	for _, m := range ms {
		if v := mapping.ToDomainVault(m); v.IsLowBalance(threshold) {
			low = append(low, v)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Remaining().LessThan(low[j].Remaining())
	})
	return low, nil
}

func (r *GormVaultRepository) SumAvailable(ctx context.Context, userID string) (decimal.Decimal, error) {
	ms, err := r.activeVaults(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range ms {
		total = total.Add(m.MonthlyLimit.Sub(m.CurrentSpent))
	}
	return total, nil
}

func (r *GormVaultRepository) SumLimits(ctx context.Context, userID string) (decimal.Decimal, error) {
	ms, err := r.activeVaults(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, m := range ms {
		total = total.Add(m.MonthlyLimit)
	}
	return total, nil
}

func (r *GormVaultRepository) ListUsersWithVaults(ctx context.Context) ([]string, error) {
	var userIDs []string
	err := r.DB.WithContext(ctx).Model(&models.Vault{}).
		Where("is_active = ?", true).
		Distinct("user_id").Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vault owners: %w", err)
	}
	return userIDs, nil
}

func (r *GormVaultRepository) update(ctx context.Context, vaultID string, fields map[string]any, extra ...any) error {
	q := r.DB.WithContext(ctx).Model(&models.Vault{}).Where("vault_id = ?", vaultID)
	if len(extra) > 0 {
		q = q.Where(extra[0], extra[1:]...)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return mapError(res.Error, "update vault %s", vaultID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: vault %s", apperrors.ErrNotFound, vaultID)
	}
	return nil
}

func (r *GormVaultRepository) UpdateVault(ctx context.Context, vault domain.Vault) error {
	return r.update(ctx, vault.VaultID, map[string]any{
		"name":                 vault.Name,
		"icon":                 vault.Icon,
		"color":                vault.Color,
		"monthly_limit":        vault.MonthlyLimit,
		"custom_category_name": vault.CustomCategoryName,
		"last_updated_at":      vault.LastUpdatedAt,
	})
}

func (r *GormVaultRepository) DeactivateVault(ctx context.Context, vaultID string, now time.Time) error {
	v, err := r.FindVaultByID(ctx, vaultID)
	if err != nil {
		return err
	}
	if v.IsEmergency {
		return apperrors.ErrEmergencyVaultProtected
	}
	return r.update(ctx, vaultID, map[string]any{
		"is_active":              false,
		"is_default_instant_pay": false,
		"last_updated_at":        now,
	})
}

func (r *GormVaultRepository) UpdateEmergencyPINHash(ctx context.Context, vaultID string, pinHash string, now time.Time) error {
	return r.update(ctx, vaultID, map[string]any{
		"emergency_pin_hash": pinHash,
		"last_updated_at":    now,
	}, "is_emergency = ?", true)
}

// SetDefaultInstantPay clears the previous default and marks vaultID in one transaction.
func (r *GormVaultRepository) SetDefaultInstantPay(ctx context.Context, userID, vaultID string, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Vault{}).
			Where("user_id = ? AND is_default_instant_pay = ?", userID, true).
			Updates(map[string]any{"is_default_instant_pay": false, "last_updated_at": now}).Error; err != nil {
			return mapError(err, "clear default instant pay vault")
		}

		res := tx.Model(&models.Vault{}).
			Where("vault_id = ? AND user_id = ? AND is_active = ?", vaultID, userID, true).
			Updates(map[string]any{"is_default_instant_pay": true, "last_updated_at": now})
		if res.Error != nil {
			return mapError(res.Error, "set default instant pay vault %s", vaultID)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: active vault %s", apperrors.ErrNotFound, vaultID)
		}
		return nil
	})
}

// ResetVaultsIfDue zeroes every active vault of the user when any is past its reset date.
func (r *GormVaultRepository) ResetVaultsIfDue(ctx context.Context, userID string, now time.Time, nextResetDate time.Time) (int, error) {
	var reset int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ms []models.Vault
		if err := tx.Where("user_id = ? AND is_active = ?", userID, true).Find(&ms).Error; err != nil {
			return fmt.Errorf("failed to load vaults for reset: %w", err)
		}

		due := false
		for _, m := range ms {
			if now.After(m.ResetDate) {
				due = true
				break
			}
		}
		if !due {
			return nil
		}

		res := tx.Model(&models.Vault{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Updates(map[string]any{
				"current_spent":   decimal.Zero,
				"reset_date":      nextResetDate,
				"last_updated_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reset vaults: %w", res.Error)
		}
		reset = int(res.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reset, nil
}
