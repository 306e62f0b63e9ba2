package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// VaultCategory is the closed set of budget categories a vault can belong to.
type VaultCategory string

const (
	CategoryFood      VaultCategory = "Food"
	CategoryTravel    VaultCategory = "Travel"
	CategoryLifestyle VaultCategory = "Lifestyle"
	CategoryBusiness  VaultCategory = "Business"
	CategoryEmergency VaultCategory = "Emergency"
	CategoryCustom    VaultCategory = "Custom"
)

// IsValid reports whether c is one of the known categories.
func (c VaultCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryLifestyle, CategoryBusiness, CategoryEmergency, CategoryCustom:
		return true
	default:
		return false
	}
}

// IsUnique reports whether a user may own at most one active vault of this category.
// Custom vaults may repeat.
func (c VaultCategory) IsUnique() bool {
	return c != CategoryCustom
}

type categoryStyle struct {
	icon  string
	color string
}

var categoryDefaults = map[VaultCategory]categoryStyle{
	CategoryFood:      {icon: "🍔", color: "#FF6B6B"},
	CategoryTravel:    {icon: "✈️", color: "#4ECDC4"},
	CategoryLifestyle: {icon: "🎨", color: "#95E1D3"},
	CategoryBusiness:  {icon: "💼", color: "#F38181"},
	CategoryEmergency: {icon: EmergencyVaultIcon, color: EmergencyVaultColor},
	CategoryCustom:    {icon: "📦", color: "#9B59B6"},
}

// DefaultStyle returns the icon and color used when a vault is created without them.
func (c VaultCategory) DefaultStyle() (icon, color string) {
	style := categoryDefaults[c]
	return style.icon, style.color
}

// ParseVaultCategory converts a raw string into a VaultCategory.
func ParseVaultCategory(s string) (VaultCategory, error) {
	c := VaultCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown vault category %q", apperrors.ErrValidation, s)
	}
	return c, nil
}

// Vault is a budget envelope with a monthly spending limit, owned by exactly one user.
type Vault struct {
	VaultID             string          `json:"vaultID"`
	UserID              string          `json:"userID"`
	Name                string          `json:"name"`
	Category            VaultCategory   `json:"category"`
	CustomCategoryName  string          `json:"customCategoryName,omitempty"`
	Icon                string          `json:"icon"`
	Color               string          `json:"color"`
	MonthlyLimit        decimal.Decimal `json:"monthlyLimit"`
	CurrentSpent        decimal.Decimal `json:"currentSpent"`
	IsEmergency         bool            `json:"isEmergency"`
	EmergencyPINHash    string          `json:"-"`
	IsActive            bool            `json:"isActive"`
	IsDefaultInstantPay bool            `json:"isDefaultInstantPay"`
	ResetDate           time.Time       `json:"resetDate"`
	AuditFields
}

// Remaining is the amount still spendable this cycle. It can be negative after a
// reassignment moved spend onto the vault past its limit.
func (v Vault) Remaining() decimal.Decimal {
	return v.MonthlyLimit.Sub(v.CurrentSpent)
}

// CanAfford applies the affordability rule: limit - spent >= amount.
func (v Vault) CanAfford(amount decimal.Decimal) bool {
	return v.Remaining().GreaterThanOrEqual(amount)
}

// IsLowBalance reports 0 < remaining <= threshold*limit. Exhausted vaults are not "low".
func (v Vault) IsLowBalance(threshold decimal.Decimal) bool {
	remaining := v.Remaining()
	return remaining.IsPositive() && remaining.LessThanOrEqual(v.MonthlyLimit.Mul(threshold))
}

// IsExceeded reports whether nothing is left to spend.
func (v Vault) IsExceeded() bool {
	return !v.Remaining().IsPositive()
}

// NeedsReset reports whether the monthly rollover date has passed.
func (v Vault) NeedsReset(now time.Time) bool {
	return now.After(v.ResetDate)
}

// CycleStart returns the first instant of the budget month that ResetDate closes.
func (v Vault) CycleStart() time.Time {
	return v.ResetDate.AddDate(0, -1, 0)
}

// SpendingPercentage returns spent/limit as a whole percentage, 0 for a zero limit.
func (v Vault) SpendingPercentage() int64 {
	if v.MonthlyLimit.IsZero() {
		return 0
	}
	return v.CurrentSpent.Div(v.MonthlyLimit).Mul(decimal.NewFromInt(100)).IntPart()
}

// DisplayName includes the custom label for custom vaults.
func (v Vault) DisplayName() string {
	if v.Category == CategoryCustom && v.CustomCategoryName != "" {
		return fmt.Sprintf("%s (%s)", v.Name, v.CustomCategoryName)
	}
	return v.Name
}

// Validate checks the static invariants of a vault before it is persisted.
func (v Vault) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: vault name is required", apperrors.ErrValidation)
	}
	if !v.Category.IsValid() {
		return fmt.Errorf("%w: unknown vault category %q", apperrors.ErrValidation, v.Category)
	}
	if !v.MonthlyLimit.IsPositive() {
		return fmt.Errorf("%w: monthly limit must be positive", apperrors.ErrValidation)
	}
	if !HasMoneyScale(v.MonthlyLimit) {
		return fmt.Errorf("%w: monthly limit allows at most %d decimal places", apperrors.ErrValidation, MoneyScale)
	}
	if v.CurrentSpent.IsNegative() {
		return fmt.Errorf("%w: current spent cannot be negative", apperrors.ErrValidation)
	}
	if v.IsEmergency != (v.Category == CategoryEmergency) {
		return fmt.Errorf("%w: emergency flag must match the Emergency category", apperrors.ErrValidation)
	}
	if v.IsEmergency && v.EmergencyPINHash == "" {
		return fmt.Errorf("%w: emergency vault requires a PIN", apperrors.ErrValidation)
	}
	if !v.IsEmergency && v.EmergencyPINHash != "" {
		return fmt.Errorf("%w: only emergency vaults carry a PIN", apperrors.ErrValidation)
	}
	return nil
}

// VaultSummary aggregates a user's active vaults.
type VaultSummary struct {
	VaultCount      int             `json:"vaultCount"`
	LowBalanceCount int             `json:"lowBalanceCount"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	TotalAvailable  decimal.Decimal `json:"totalAvailable"`
}
