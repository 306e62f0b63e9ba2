package dto

import (
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVaultRequest defines the data needed to create a standard category vault.
type CreateVaultRequest struct {
	Name         string               `json:"name" binding:"required,max=60"`
	Category     domain.VaultCategory `json:"category" binding:"required,oneof=Food Travel Lifestyle Business"`
	Icon         string               `json:"icon"`
	Color        string               `json:"color" binding:"omitempty,hexcolor"`
	MonthlyLimit decimal.Decimal      `json:"monthlyLimit"`
}

// CreateCustomVaultRequest defines the data needed to create a custom vault.
type CreateCustomVaultRequest struct {
	Name               string          `json:"name" binding:"required,max=60"`
	CustomCategoryName string          `json:"customCategoryName" binding:"required,max=60"`
	Icon               string          `json:"icon"`
	Color              string          `json:"color" binding:"omitempty,hexcolor"`
	MonthlyLimit       decimal.Decimal `json:"monthlyLimit"`
}

// CreateEmergencyVaultRequest carries the PIN protecting the emergency vault.
type CreateEmergencyVaultRequest struct {
	PIN string `json:"pin" binding:"required,pin6"`
}

// UpdateVaultRequest defines the data allowed for updating a vault.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateVaultRequest struct {
	Name               *string          `json:"name" binding:"omitempty,max=60"`
	CustomCategoryName *string          `json:"customCategoryName" binding:"omitempty,max=60"`
	Icon               *string          `json:"icon"`
	Color              *string          `json:"color" binding:"omitempty,hexcolor"`
	MonthlyLimit       *decimal.Decimal `json:"monthlyLimit"`
}

// VerifyEmergencyPINRequest carries a PIN to check against the emergency vault.
type VerifyEmergencyPINRequest struct {
	PIN string `json:"pin" binding:"required,pin6"`
}

// UpdateEmergencyPINRequest changes the emergency vault PIN.
type UpdateEmergencyPINRequest struct {
	CurrentPIN string `json:"currentPin" binding:"required,pin6"`
	NewPIN     string `json:"newPin" binding:"required,pin6"`
}

// VaultResponse defines the data returned for a vault.
type VaultResponse struct {
	VaultID             string               `json:"vaultID"`
	Name                string               `json:"name"`
	DisplayName         string               `json:"displayName"`
	Category            domain.VaultCategory `json:"category"`
	CustomCategoryName  string               `json:"customCategoryName,omitempty"`
	Icon                string               `json:"icon"`
	Color               string               `json:"color"`
	MonthlyLimit        decimal.Decimal      `json:"monthlyLimit"`
	CurrentSpent        decimal.Decimal      `json:"currentSpent"`
	Remaining           decimal.Decimal      `json:"remaining"`
	SpendingPercentage  int64                `json:"spendingPercentage"`
	Exceeded            bool                 `json:"exceeded"`
	IsEmergency         bool                 `json:"isEmergency"`
	IsActive            bool                 `json:"isActive"`
	IsDefaultInstantPay bool                 `json:"isDefaultInstantPay"`
	ResetDate           time.Time            `json:"resetDate"`
	CreatedAt           time.Time            `json:"createdAt"`
	LastUpdatedAt       time.Time            `json:"lastUpdatedAt"`
}

// EmergencyVaultResponse adds the advisory weak PIN flag to a created emergency vault.
type EmergencyVaultResponse struct {
	VaultResponse
	WeakPIN bool `json:"weakPin"`
}

// ListVaultsResponse wraps the list of vaults.
type ListVaultsResponse struct {
	Vaults []VaultResponse `json:"vaults"`
}

// VaultSummaryResponse adds whether a monthly reset is overdue to the vault totals.
type VaultSummaryResponse struct {
	domain.VaultSummary
	NeedsReset bool `json:"needsReset"`
}

// VerifyEmergencyPINResponse reports the PIN check result.
type VerifyEmergencyPINResponse struct {
	Valid bool `json:"valid"`
}

// ResetVaultsResponse reports whether a monthly reset happened.
type ResetVaultsResponse struct {
	Reset bool `json:"reset"`
}

// ToVaultResponse converts a domain.Vault to VaultResponse DTO
func ToVaultResponse(v *domain.Vault) VaultResponse {
	return VaultResponse{
		VaultID:             v.VaultID,
		Name:                v.Name,
		DisplayName:         v.DisplayName(),
		Category:            v.Category,
		CustomCategoryName:  v.CustomCategoryName,
		Icon:                v.Icon,
		Color:               v.Color,
		MonthlyLimit:        v.MonthlyLimit,
		CurrentSpent:        v.CurrentSpent,
		Remaining:           v.Remaining(),
		SpendingPercentage:  v.SpendingPercentage(),
		Exceeded:            v.IsExceeded(),
		IsEmergency:         v.IsEmergency,
		IsActive:            v.IsActive,
		IsDefaultInstantPay: v.IsDefaultInstantPay,
		ResetDate:           v.ResetDate,
		CreatedAt:           v.CreatedAt,
		LastUpdatedAt:       v.LastUpdatedAt,
	}
}

// ToListVaultResponse converts a slice of domain.Vault to a ListVaultsResponse
func ToListVaultResponse(vaults []domain.Vault) ListVaultsResponse {
	res := make([]VaultResponse, len(vaults))
	for i := range vaults {
		res[i] = ToVaultResponse(&vaults[i])
	}
	return ListVaultsResponse{Vaults: res}
}
