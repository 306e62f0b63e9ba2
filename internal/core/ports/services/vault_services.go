package services

import (
	"context"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
)

// VaultCreatorSvc defines the vault constructors. All of them refuse once the user
// owns the maximum number of active vaults.
type VaultCreatorSvc interface {
	// CreateVault creates a standard category vault. ErrDuplicateCategory when one is already active.
	CreateVault(ctx context.Context, userID string, req dto.CreateVaultRequest) (*domain.Vault, error)

	CreateCustomVault(ctx context.Context, userID string, req dto.CreateCustomVaultRequest) (*domain.Vault, error)

	// CreateEmergencyVault creates the user's single PIN-protected vault. The bool is the weak PIN advisory.
	CreateEmergencyVault(ctx context.Context, userID string, pin string) (*domain.Vault, bool, error)
}

// VaultReaderSvc defines read operations for vaults.
type VaultReaderSvc interface {
	GetVault(ctx context.Context, userID, vaultID string) (*domain.Vault, error)
	ListVaults(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error)

	// ListSelectableVaults lists active non-emergency vaults.
	ListSelectableVaults(ctx context.Context, userID string) ([]domain.Vault, error)

	GetEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error)
	GetDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error)
	GetLowBalanceVaults(ctx context.Context, userID string) ([]domain.Vault, error)
	GetSummary(ctx context.Context, userID string) (*domain.VaultSummary, error)
}

// VaultWriterSvc defines vault mutations other than spending.
type VaultWriterSvc interface {
	UpdateVault(ctx context.Context, userID, vaultID string, req dto.UpdateVaultRequest) (*domain.Vault, error)

	// DeleteVault deactivates a vault. Emergency vaults return ErrEmergencyVaultProtected.
	DeleteVault(ctx context.Context, userID, vaultID string) error

	SetDefaultInstantPayVault(ctx context.Context, userID, vaultID string) error
}

// VaultCycleSvc defines the monthly rollover.
type VaultCycleSvc interface {
	// ResetMonthlyVaults resets all active vaults when any is overdue. False when nothing was due.
	ResetMonthlyVaults(ctx context.Context, userID string) (bool, error)
	NeedsReset(ctx context.Context, userID string) (bool, error)
}

// EmergencyPINSvc defines the emergency vault PIN gate.
type EmergencyPINSvc interface {
	VerifyEmergencyPIN(ctx context.Context, userID, vaultID, pin string) (bool, error)
	UpdateEmergencyPIN(ctx context.Context, userID, vaultID, currentPIN, newPIN string) (bool, error)
}

// VaultSvcFacade combines all vault-related service interfaces
type VaultSvcFacade interface {
	VaultCreatorSvc
	VaultReaderSvc
	VaultWriterSvc
	VaultCycleSvc
	EmergencyPINSvc
}
