package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reassignmentColumns = `reassignment_id, transaction_id, from_vault_id, to_vault_id, changed_by_user_id, changed_at`

type PgxReassignmentRepository struct {
	pool *pgxpool.Pool
}

func newPgxReassignmentRepository(pool *pgxpool.Pool) portsrepo.ReassignmentRepository {
	return &PgxReassignmentRepository{pool: pool}
}

var _ portsrepo.ReassignmentRepository = (*PgxReassignmentRepository)(nil)

func (r *PgxReassignmentRepository) query(ctx context.Context, query string, args ...any) ([]domain.Reassignment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reassignments: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Reassignment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan reassignments: %w", err)
	}
	return mapping.ToDomainReassignmentSlice(ms), nil
}

// ListReassignmentsByTransaction returns the move history of one transaction, oldest first.
func (r *PgxReassignmentRepository) ListReassignmentsByTransaction(ctx context.Context, transactionID string) ([]domain.Reassignment, error) {
	return r.query(ctx, `
		SELECT `+reassignmentColumns+` FROM vault_reassignments
		WHERE transaction_id = $1
		ORDER BY changed_at ASC, reassignment_id ASC;
	`, transactionID)
}

func (r *PgxReassignmentRepository) ListReassignmentsByUser(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error) {
	return r.query(ctx, `
		SELECT `+reassignmentColumns+` FROM vault_reassignments
		WHERE changed_by_user_id = $1
		ORDER BY changed_at DESC, reassignment_id DESC
		LIMIT $2;
	`, userID, limit)
}
