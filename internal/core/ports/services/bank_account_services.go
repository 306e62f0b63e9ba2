package services

import (
	"context"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
)

// BankAccountSvcFacade manages the single primary funding account a user links.
type BankAccountSvcFacade interface {
	// LinkBankAccount creates the primary account with the default simulated balance.
	// A user who already linked one gets ErrDuplicate.
	LinkBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error)

	GetPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error)

	// UpdateBankAccount edits the primary account's details. The balance is left untouched.
	UpdateBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error)
}
