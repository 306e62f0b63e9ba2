package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger-wide defaults carried over from the original mobile app.
var (
	// DefaultEmergencyVaultLimit is the monthly limit given to a newly created emergency vault.
	DefaultEmergencyVaultLimit = decimal.NewFromInt(5000)

	// DefaultLowBalanceThreshold is the fraction of the limit at or below which a vault counts as low.
	DefaultLowBalanceThreshold = decimal.NewFromFloat(0.2)
)

const (
	// DefaultMaxVaultsPerUser caps the number of active vaults a user may own.
	DefaultMaxVaultsPerUser = 10

	// EmergencyVaultName is the fixed display name of emergency vaults.
	EmergencyVaultName  = "Emergency Vault"
	EmergencyVaultIcon  = "🚨"
	EmergencyVaultColor = "#FF8C42"

	// MoneyScale is the number of decimal places money is stored with.
	MoneyScale = 2
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NextResetDate returns midnight UTC of the first day of the month following now.
func NextResetDate(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// HasMoneyScale reports whether d fits in MoneyScale decimal places without rounding.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
