package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultSimulatedBalance is the balance a newly linked account starts with.
var DefaultSimulatedBalance = decimal.NewFromInt(50000)

var (
	ifscPattern          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{9,18}$`)
)

// BankAccount is the user's linked funding account. The balance is simulated and only shown, never debited.
type BankAccount struct {
	AccountID         string          `json:"accountID"`
	UserID            string          `json:"userID"`
	BankName          string          `json:"bankName"`
	AccountNumber     string          `json:"-"`
	AccountHolderName string          `json:"accountHolderName"`
	IFSCCode          string          `json:"ifscCode"`
	IsPrimary         bool            `json:"isPrimary"`
	SimulatedBalance  decimal.Decimal `json:"simulatedBalance"`
	AuditFields
}

// Validate checks the account details a user can edit.
func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.BankName) == "" {
		return fmt.Errorf("%w: bank name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(a.AccountHolderName) == "" {
		return fmt.Errorf("%w: account holder name is required", apperrors.ErrValidation)
	}
	if !accountNumberPattern.MatchString(a.AccountNumber) {
		return fmt.Errorf("%w: account number must be 9 to 18 digits", apperrors.ErrValidation)
	}
	if !ifscPattern.MatchString(a.IFSCCode) {
		return fmt.Errorf("%w: invalid IFSC code", apperrors.ErrValidation)
	}
	if a.SimulatedBalance.IsNegative() || !HasMoneyScale(a.SimulatedBalance) {
		return fmt.Errorf("%w: invalid simulated balance", apperrors.ErrValidation)
	}
	return nil
}

// MaskedAccountNumber keeps only the last four digits.
func (a BankAccount) MaskedAccountNumber() string {
	n := len(a.AccountNumber)
	if n <= 4 {
		return a.AccountNumber
	}
	return strings.Repeat("X", n-4) + a.AccountNumber[n-4:]
}
