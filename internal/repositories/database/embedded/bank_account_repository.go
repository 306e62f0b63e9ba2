package embedded

import (
	"context"
	"fmt"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"gorm.io/gorm"
)

type GormBankAccountRepository struct {
	BaseRepository
}

func newGormBankAccountRepository(db *gorm.DB) portsrepo.BankAccountRepositoryFacade {
	return &GormBankAccountRepository{BaseRepository{DB: db}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*GormBankAccountRepository)(nil)

func (r *GormBankAccountRepository) FindPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := r.DB.WithContext(ctx).Where("user_id = ? AND is_primary = ?", userID, true).First(&m).Error
	if err != nil {
		return nil, mapError(err, "primary bank account for user %s", userID)
	}
	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}

func (r *GormBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	return mapError(r.DB.WithContext(ctx).Create(&m).Error, "save bank account %s", m.AccountID)
}

func (r *GormBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	res := r.DB.WithContext(ctx).Model(&models.BankAccount{}).
		Where("account_id = ? AND user_id = ?", m.AccountID, m.UserID).
		Updates(map[string]any{
			"bank_name":           m.BankName,
			"account_number":      m.AccountNumber,
			"account_holder_name": m.AccountHolderName,
			"ifsc_code":           m.IFSCCode,
			"last_updated_at":     m.LastUpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update bank account %s: %w", m.AccountID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}
