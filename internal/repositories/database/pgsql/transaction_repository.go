package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/SscSPs/vault_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, vault_id, original_vault_id, merchant_name, amount,
	transaction_type, payment_method, description, transaction_date, status, vault_changed, vault_changed_at`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.VaultID,
		&m.OriginalVaultID,
		&m.MerchantName,
		&m.Amount,
		&m.TransactionType,
		&m.PaymentMethod,
		&m.Description,
		&m.TransactionDate,
		&m.Status,
		&m.VaultChanged,
		&m.VaultChangedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// execer is satisfied by both the pool and an open transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertTransaction(ctx context.Context, db execer, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := db.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.TransactionID,
		m.UserID,
		m.VaultID,
		m.OriginalVaultID,
		m.MerchantName,
		m.Amount,
		m.TransactionType,
		m.PaymentMethod,
		m.Description,
		m.TransactionDate,
		m.Status,
		m.VaultChanged,
		m.VaultChangedAt,
	)
	return mapError(err, "save transaction %s", m.TransactionID)
}

// SaveFailedTransaction inserts a failed attempt. No vault is touched.
func (r *PgxTransactionRepository) SaveFailedTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, txn)
}

// SaveSuccessfulPayment debits the vault only while it can still afford the amount and
// records the payment in the same transaction.
func (r *PgxTransactionRepository) SaveSuccessfulPayment(ctx context.Context, txn domain.Transaction) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE vaults
			SET current_spent = current_spent + $2, last_updated_at = $3
			WHERE vault_id = $1 AND is_active AND monthly_limit - current_spent >= $2;
		`, txn.VaultID, txn.Amount, txn.TransactionDate)
		if err != nil {
			return mapError(err, "debit vault %s", txn.VaultID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: vault %s", apperrors.ErrInsufficientBalance, txn.VaultID)
		}
		return insertTransaction(ctx, tx, txn)
	})
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	t, err := scanTransaction(r.Pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, mapError(err, "transaction %s", transactionID)
	}
	return &t, nil
}

// ListTransactionsByUser pages through the user's transactions ordered by
// (transaction_date DESC, transaction_id DESC).
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.VaultID != "" {
		add("vault_id = $%d", filter.VaultID)
	}
	if filter.PaymentMethod != "" {
		add("payment_method = $%d", string(filter.PaymentMethod))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.ReassignedOnly {
		conds = append(conds, "vault_changed")
	}
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, at, id)
		conds = append(conds, fmt.Sprintf("(transaction_date, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE %s
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $%d;
	`, transactionColumns, strings.Join(conds, " AND "), len(args))

	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.TransactionDate, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

func (r *PgxTransactionRepository) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	return r.queryTransactions(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, transaction_id DESC
		LIMIT $2;
	`, userID, limit)
}

func (r *PgxTransactionRepository) SumSpentByVault(ctx context.Context, vaultID string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE vault_id = $1 AND status = $2 AND transaction_type = $3 AND transaction_date >= $4;
	`, vaultID, string(domain.StatusSuccess), string(domain.Debit), since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum spend of vault %s: %w", vaultID, err)
	}
	return total, nil
}

// ReassignTransaction locks the transaction and both vaults, re-checks the plan still
// applies and moves the spend in one unit.
func (r *PgxTransactionRepository) ReassignTransaction(ctx context.Context, plan domain.ReassignmentPlan) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		var status string
		var vaultID *string
		err := tx.QueryRow(ctx,
			`SELECT status, vault_id FROM transactions WHERE transaction_id = $1 FOR UPDATE;`,
			plan.TransactionID).Scan(&status, &vaultID)
		if err != nil {
			return mapError(err, "transaction %s", plan.TransactionID)
		}
		if status != string(domain.StatusSuccess) || mapping.FromNullableID(vaultID) != plan.FromVaultID {
			return fmt.Errorf("%w: transaction %s changed since it was read", apperrors.ErrConflict, plan.TransactionID)
		}

		// Fixed lock order keeps two opposite reassignments from deadlocking.
		rows, err := tx.Query(ctx, `
			SELECT vault_id, is_active FROM vaults
			WHERE vault_id = ANY($1) AND user_id = $2
			ORDER BY vault_id FOR UPDATE;
		`, []string{plan.FromVaultID, plan.ToVaultID}, plan.ActingUserID)
		if err != nil {
			return fmt.Errorf("failed to lock vaults: %w", err)
		}
		active := map[string]bool{}
		for rows.Next() {
			var id string
			var isActive bool
			if err := rows.Scan(&id, &isActive); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan vault lock: %w", err)
			}
			active[id] = isActive
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to lock vaults: %w", err)
		}
		if _, ok := active[plan.FromVaultID]; !ok {
			return fmt.Errorf("%w: vault %s", apperrors.ErrNotFound, plan.FromVaultID)
		}
		if !active[plan.ToVaultID] {
			return fmt.Errorf("%w: vault %s is not an active target", apperrors.ErrConflict, plan.ToVaultID)
		}

		batch := &pgx.Batch{}
		batch.Queue(`
			UPDATE vaults SET current_spent = GREATEST(current_spent - $2, 0), last_updated_at = $3
			WHERE vault_id = $1;
		`, plan.FromVaultID, plan.Amount, plan.ChangedAt)
		batch.Queue(`
			UPDATE vaults SET current_spent = current_spent + $2, last_updated_at = $3
			WHERE vault_id = $1;
		`, plan.ToVaultID, plan.Amount, plan.ChangedAt)
		batch.Queue(`
			UPDATE transactions
			SET vault_id = $2, original_vault_id = COALESCE(original_vault_id, $3),
			    vault_changed = TRUE, vault_changed_at = $4
			WHERE transaction_id = $1;
		`, plan.TransactionID, plan.ToVaultID, plan.OriginalVaultID, plan.ChangedAt)
		rec := mapping.ToModelReassignment(plan.Record)
		batch.Queue(`
			INSERT INTO vault_reassignments (reassignment_id, transaction_id, from_vault_id, to_vault_id, changed_by_user_id, changed_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, rec.ReassignmentID, rec.TransactionID, rec.FromVaultID, rec.ToVaultID, rec.ChangedByUserID, rec.ChangedAt)

		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return mapError(err, "apply reassignment of transaction %s", plan.TransactionID)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close reassignment batch: %w", err)
		}
		return nil
	})
}
