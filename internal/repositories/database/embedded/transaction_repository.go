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
	"github.com/SscSPs/vault_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GormTransactionRepository struct {
	BaseRepository
}

func newGormTransactionRepository(db *gorm.DB) portsrepo.TransactionRepositoryFacade {
	return &GormTransactionRepository{BaseRepository{DB: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*GormTransactionRepository)(nil)

func (r *GormTransactionRepository) SaveFailedTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	return mapError(r.DB.WithContext(ctx).Create(&m).Error, "save transaction %s", m.TransactionID)
}

// SaveSuccessfulPayment re-checks affordability on the locked store before debiting.
func (r *GormTransactionRepository) SaveSuccessfulPayment(ctx context.Context, txn domain.Transaction) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vault models.Vault
		if err := tx.Where("vault_id = ?", txn.VaultID).First(&vault).Error; err != nil {
			return mapError(err, "vault %s", txn.VaultID)
		}
		if !vault.IsActive || vault.MonthlyLimit.Sub(vault.CurrentSpent).LessThan(txn.Amount) {
			return fmt.Errorf("%w: vault %s", apperrors.ErrInsufficientBalance, txn.VaultID)
		}

		if err := tx.Model(&models.Vault{}).Where("vault_id = ?", txn.VaultID).
			Updates(map[string]any{
				"current_spent":   vault.CurrentSpent.Add(txn.Amount),
				"last_updated_at": txn.TransactionDate,
			}).Error; err != nil {
			return mapError(err, "debit vault %s", txn.VaultID)
		}

		m := mapping.ToModelTransaction(txn)
		return mapError(tx.Create(&m).Error, "save transaction %s", m.TransactionID)
	})
}

func (r *GormTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var m models.Transaction
	if err := r.DB.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&m).Error; err != nil {
		return nil, mapError(err, "transaction %s", transactionID)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// ListTransactionsByUser pages through the user's transactions ordered by
// (transaction_date DESC, transaction_id DESC).
func (r *GormTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if filter.VaultID != "" {
		q = q.Where("vault_id = ?", filter.VaultID)
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", string(filter.PaymentMethod))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.ReassignedOnly {
		q = q.Where("vault_changed = ?", true)
	}
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		q = q.Where("transaction_date < ? OR (transaction_date = ? AND transaction_id < ?)", at, at, id)
	}

	var ms []models.Transaction
	if err := q.Order("transaction_date DESC, transaction_id DESC").Limit(limit + 1).Find(&ms).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	txns := mapping.ToDomainTransactionSlice(ms)
	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.TransactionDate, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

func (r *GormTransactionRepository) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	var ms []models.Transaction
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC, transaction_id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *GormTransactionRepository) SumSpentByVault(ctx context.Context, vaultID string, since time.Time) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.DB.WithContext(ctx).Model(&models.Transaction{}).
		Where("vault_id = ? AND status = ? AND transaction_type = ?", vaultID, string(domain.StatusSuccess), string(domain.Debit)).
		Where("transaction_date >= ?", since).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum spend of vault %s: %w", vaultID, err)
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// ReassignTransaction re-checks the plan against the stored rows and applies it in one transaction.
func (r *GormTransactionRepository) ReassignTransaction(ctx context.Context, plan domain.ReassignmentPlan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("transaction_id = ?", plan.TransactionID).First(&txn).Error; err != nil {
			return mapError(err, "transaction %s", plan.TransactionID)
		}
		if txn.Status != string(domain.StatusSuccess) || mapping.FromNullableID(txn.VaultID) != plan.FromVaultID {
			return fmt.Errorf("%w: transaction %s changed since it was read", apperrors.ErrConflict, plan.TransactionID)
		}

		var from, to models.Vault
		if err := tx.Where("vault_id = ? AND user_id = ?", plan.FromVaultID, plan.ActingUserID).First(&from).Error; err != nil {
			return mapError(err, "vault %s", plan.FromVaultID)
		}
		if err := tx.Where("vault_id = ? AND user_id = ?", plan.ToVaultID, plan.ActingUserID).First(&to).Error; err != nil {
			return mapError(err, "vault %s", plan.ToVaultID)
		}
		if !to.IsActive {
			return fmt.Errorf("%w: vault %s is not an active target", apperrors.ErrConflict, plan.ToVaultID)
		}

		if err := tx.Model(&models.Vault{}).Where("vault_id = ?", from.VaultID).Updates(map[string]any{
			"current_spent":   domain.ClampedSpend(from.CurrentSpent, plan.Amount),
			"last_updated_at": plan.ChangedAt,
		}).Error; err != nil {
			return mapError(err, "release spend from vault %s", from.VaultID)
		}
		if err := tx.Model(&models.Vault{}).Where("vault_id = ?", to.VaultID).Updates(map[string]any{
			"current_spent":   to.CurrentSpent.Add(plan.Amount),
			"last_updated_at": plan.ChangedAt,
		}).Error; err != nil {
			return mapError(err, "charge vault %s", to.VaultID)
		}

		fields := map[string]any{
			"vault_id":         plan.ToVaultID,
			"vault_changed":    true,
			"vault_changed_at": plan.ChangedAt,
		}
		if txn.OriginalVaultID == nil {
			fields["original_vault_id"] = plan.OriginalVaultID
		}
		if err := tx.Model(&models.Transaction{}).Where("transaction_id = ?", plan.TransactionID).
			Updates(fields).Error; err != nil {
			return mapError(err, "move transaction %s", plan.TransactionID)
		}

		rec := mapping.ToModelReassignment(plan.Record)
		return mapError(tx.Create(&rec).Error, "record reassignment of transaction %s", plan.TransactionID)
	})
}
