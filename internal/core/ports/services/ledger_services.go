package services

import (
	"context"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentSvc records payment attempts. Business rule failures come back as persisted
// failed transactions with a nil error; only storage failures return an error.
type PaymentSvc interface {
	// ProcessPayment debits the vault named in the request.
	ProcessPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error)

	// ProcessInstantPayment debits the default instant pay vault, falling back to Lifestyle.
	ProcessInstantPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error)

	// ProcessEmergencyPayment debits an emergency vault. The PIN gate is the caller's.
	ProcessEmergencyPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error)

	// Pay dispatches on req.Method.
	Pay(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error)
}

// PaymentValidatorSvc answers affordability questions without writing anything.
type PaymentValidatorSvc interface {
	ValidatePayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error)
	ValidateEmergencyPayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error)
}

// ReassignmentSvc moves a successful transaction's spend between vaults.
type ReassignmentSvc interface {
	// ReassignTransactionVault returns false with a nil error when a precondition does not hold.
	ReassignTransactionVault(ctx context.Context, transactionID, newVaultID, actingUserID string) (bool, error)

	GetReassignmentHistory(ctx context.Context, userID, transactionID string) ([]domain.Reassignment, error)
	ListUserReassignments(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error)
}

// TransactionReaderSvc defines read operations for transaction history.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
	ListReassignedTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	PaymentSvc
	PaymentValidatorSvc
	ReassignmentSvc
	TransactionReaderSvc
}
