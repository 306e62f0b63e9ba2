package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VaultReader defines read operations for vault data
type VaultReader interface {
	// FindVaultByID retrieves a vault regardless of its active flag.
	FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error)

	// ListVaultsByUser lists a user's vaults, newest first.
	ListVaultsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error)

	// FindDefaultInstantPayVault returns the user's active default vault or ErrNotFound.
	FindDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error)

	// FindVaultByCategory returns the user's active vault of the category or ErrNotFound.
	FindVaultByCategory(ctx context.Context, userID string, category domain.VaultCategory) (*domain.Vault, error)

	// FindEmergencyVault returns the user's active emergency vault or ErrNotFound.
	FindEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error)

	CategoryExists(ctx context.Context, userID string, category domain.VaultCategory) (bool, error)
	CountActiveVaults(ctx context.Context, userID string) (int, error)

	// FindLowBalanceVaults returns active vaults with 0 < remaining <= threshold*limit.
	FindLowBalanceVaults(ctx context.Context, userID string, threshold decimal.Decimal) ([]domain.Vault, error)

	// SumAvailable is the sum of (limit - spent) over active vaults.
	SumAvailable(ctx context.Context, userID string) (decimal.Decimal, error)
	SumLimits(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListUsersWithVaults returns the ids of users owning at least one active vault.
	ListUsersWithVaults(ctx context.Context) ([]string, error)
}

// VaultWriter defines write operations for vault data
type VaultWriter interface {
	// SaveVault persists a new vault. Unique index violations return ErrDuplicate.
	SaveVault(ctx context.Context, vault domain.Vault) error

	// UpdateVault rewrites the editable fields: name, icon, color, limit and custom label.
	UpdateVault(ctx context.Context, vault domain.Vault) error

	// DeactivateVault soft deletes a vault. Emergency vaults return ErrEmergencyVaultProtected.
	DeactivateVault(ctx context.Context, vaultID string, now time.Time) error

	UpdateEmergencyPINHash(ctx context.Context, vaultID string, pinHash string, now time.Time) error
}

// VaultBatchWriter groups the multi-row updates that must commit atomically.
type VaultBatchWriter interface {
	// SetDefaultInstantPay clears the user's default flag and sets it on vaultID in one transaction.
	SetDefaultInstantPay(ctx context.Context, userID, vaultID string, now time.Time) error

	// ResetVaultsIfDue zeroes spend on all active vaults of the user when any of them is past
	// its reset date. It returns the number of vaults reset, 0 when nothing was due.
	ResetVaultsIfDue(ctx context.Context, userID string, now time.Time, nextResetDate time.Time) (int, error)
}

// VaultRepositoryFacade combines all vault-related repository interfaces
type VaultRepositoryFacade interface {
	VaultReader
	VaultWriter
	VaultBatchWriter
}
