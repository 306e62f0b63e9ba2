package services

import (
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Vault = NewVaultService(
		repos.VaultRepo,
		WithVaultLimits(cfg.MaxVaultsPerUser, cfg.EmergencyVaultLimit, cfg.LowBalanceThreshold),
	)
	container.Ledger = NewLedgerService(repos.VaultRepo, repos.TransactionRepo, repos.ReassignmentRepo)
	container.User = NewUserService(repos.UserRepo, WithLoginLockout(cfg.MaxLoginAttempts, cfg.LockoutDuration))
	container.TokenService = NewTokenService(cfg)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo)
	container.Monitor = NewVaultMonitor(repos.VaultRepo, repos.TransactionRepo, container.Vault, cfg.MonitorInterval)

	return container
}
