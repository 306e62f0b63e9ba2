package repositories

import (
	"context"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
)

// BankAccountRepositoryFacade stores the user's linked funding account.
type BankAccountRepositoryFacade interface {
	// FindPrimaryBankAccount returns the user's primary account or ErrNotFound.
	FindPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error)

	// SaveBankAccount inserts the account. A second primary account for the user returns ErrDuplicate.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount replaces the editable details. Returns ErrNotFound when no row matched.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
}
