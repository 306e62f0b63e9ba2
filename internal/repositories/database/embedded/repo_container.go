package embedded

import (
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"gorm.io/gorm"
)

func NewRepositoryProvider(db *gorm.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		VaultRepo:        newGormVaultRepository(db),
		TransactionRepo:  newGormTransactionRepository(db),
		ReassignmentRepo: newGormReassignmentRepository(db),
		UserRepo:         newGormUserRepository(db),
		BankAccountRepo:  newGormBankAccountRepository(db),
	}
}
