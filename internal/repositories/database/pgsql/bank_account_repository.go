package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `account_id, user_id, bank_name, account_number, account_holder_name, ifsc_code, is_primary, simulated_balance, created_at, last_updated_at`

type PgxBankAccountRepository struct {
	db *pgxpool.Pool
}

func newPgxBankAccountRepository(db *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{db: db}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

func (r *PgxBankAccountRepository) FindPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := r.db.QueryRow(ctx, `
		SELECT `+bankAccountColumns+` FROM bank_accounts WHERE user_id = $1 AND is_primary;
	`, userID).Scan(
		&m.AccountID,
		&m.UserID,
		&m.BankName,
		&m.AccountNumber,
		&m.AccountHolderName,
		&m.IFSCCode,
		&m.IsPrimary,
		&m.SimulatedBalance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "primary bank account for user %s", userID)
	}
	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	_, err := r.db.Exec(ctx, `
		INSERT INTO bank_accounts (`+bankAccountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.AccountID, m.UserID, m.BankName, m.AccountNumber, m.AccountHolderName, m.IFSCCode,
		m.IsPrimary, m.SimulatedBalance, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save bank account %s", m.AccountID)
}

func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	tag, err := r.db.Exec(ctx, `
		UPDATE bank_accounts
		SET bank_name = $3, account_number = $4, account_holder_name = $5, ifsc_code = $6, last_updated_at = $7
		WHERE account_id = $1 AND user_id = $2;
	`, m.AccountID, m.UserID, m.BankName, m.AccountNumber, m.AccountHolderName, m.IFSCCode, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}
