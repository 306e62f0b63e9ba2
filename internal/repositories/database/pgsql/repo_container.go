package pgsql

import (
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		VaultRepo:        newPgxVaultRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		ReassignmentRepo: newPgxReassignmentRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		BankAccountRepo:  newPgxBankAccountRepository(dbPool),
	}
}
