package repositories

import (
	"context"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
)

// ReassignmentRepository reads the append-only reassignment log.
// Records are only written by TransactionWriter.ReassignTransaction.
type ReassignmentRepository interface {
	ListReassignmentsByTransaction(ctx context.Context, transactionID string) ([]domain.Reassignment, error)
	ListReassignmentsByUser(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error)
}
