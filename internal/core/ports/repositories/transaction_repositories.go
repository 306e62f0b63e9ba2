package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for payment records
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser returns a page of the user's transactions, newest first,
	// and a token for the next page (nil when exhausted).
	ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// SumSpentByVault sums successful debits currently attributed to the vault dated on or after since.
	SumSpentByVault(ctx context.Context, vaultID string, since time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines the atomic payment writes
type TransactionWriter interface {
	// SaveFailedTransaction inserts a failed record and touches no vault.
	SaveFailedTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveSuccessfulPayment debits the vault only if it can still afford the amount and inserts
	// the record in the same transaction. Returns ErrInsufficientBalance when the debit is refused.
	SaveSuccessfulPayment(ctx context.Context, txn domain.Transaction) error

	// ReassignTransaction applies the plan atomically. Returns ErrConflict when the stored
	// transaction no longer matches the plan.
	ReassignTransaction(ctx context.Context, plan domain.ReassignmentPlan) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
