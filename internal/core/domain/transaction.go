package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money left or entered a vault.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Debit, Credit:
		return true
	default:
		return false
	}
}

// PaymentMethod is how the paying vault was chosen.
type PaymentMethod string

const (
	MethodVaultBased PaymentMethod = "vault_based"
	MethodInstantPay PaymentMethod = "instant_pay"
	MethodEmergency  PaymentMethod = "emergency"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodVaultBased, MethodInstantPay, MethodEmergency:
		return true
	default:
		return false
	}
}

// ParsePaymentMethod converts a raw string into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, s)
	}
	return m, nil
}

// TransactionStatus is fixed when the transaction is recorded and never changes afterwards.
type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
	StatusPending TransactionStatus = "pending"
)

// IsValid reports whether s is a known status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusPending:
		return true
	default:
		return false
	}
}

// ParseTransactionStatus converts a raw string into a TransactionStatus.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, s)
	}
	return st, nil
}

// Transaction is the record of one payment attempt. Only the vault attribution
// fields change after creation, and only through reassignment.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	UserID          string            `json:"userID"`
	VaultID         string            `json:"vaultID"`                   // Empty when no vault could be resolved
	OriginalVaultID string            `json:"originalVaultID,omitempty"` // Set on first reassignment
	MerchantName    string            `json:"merchantName"`
	Amount          decimal.Decimal   `json:"amount"`
	TransactionType TransactionType   `json:"transactionType"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transactionDate"`
	Status          TransactionStatus `json:"status"`
	VaultChanged    bool              `json:"vaultChanged"`
	VaultChangedAt  *time.Time        `json:"vaultChangedAt,omitempty"`
}

// IsSuccessful reports whether the payment was applied to a vault.
func (t Transaction) IsSuccessful() bool {
	return t.Status == StatusSuccess
}

// CanBeReassigned reports whether spend was ever applied, which is the only case
// where moving the attribution makes sense.
func (t Transaction) CanBeReassigned() bool {
	return t.IsSuccessful() && t.VaultID != ""
}

// AttributionVaultID returns the vault the transaction was first posted to.
func (t Transaction) AttributionVaultID() string {
	if t.OriginalVaultID != "" {
		return t.OriginalVaultID
	}
	return t.VaultID
}

// Validate checks the record invariants before insert.
func (t Transaction) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("%w: transaction user is required", apperrors.ErrValidation)
	}
	if t.MerchantName == "" {
		return fmt.Errorf("%w: merchant name is required", apperrors.ErrValidation)
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.TransactionType)
	}
	if !t.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, t.PaymentMethod)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, t.Status)
	}
	if t.Status == StatusSuccess {
		if t.VaultID == "" {
			return fmt.Errorf("%w: successful transaction must name a vault", apperrors.ErrValidation)
		}
		if !t.Amount.IsPositive() {
			return fmt.Errorf("%w: successful transaction amount must be positive", apperrors.ErrValidation)
		}
		if !HasMoneyScale(t.Amount) {
			return fmt.Errorf("%w: amount allows at most %d decimal places", apperrors.ErrValidation, MoneyScale)
		}
	}
	if t.VaultChanged && t.VaultChangedAt == nil {
		return fmt.Errorf("%w: vault change time is required once the vault changed", apperrors.ErrValidation)
	}
	return nil
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	VaultID        string
	PaymentMethod  PaymentMethod
	Status         TransactionStatus
	ReassignedOnly bool
}

// Failure reasons recorded on failed payment attempts.
const (
	ReasonVaultNotFound       = "vault not found"
	ReasonVaultInactive       = "vault inactive"
	ReasonInvalidAmount       = "invalid amount"
	ReasonNoDefaultVault      = "no default vault"
	ReasonNotEmergencyVault   = "not an emergency vault"
	insufficientReasonPattern = "insufficient balance: available ₹%s"
)

// InsufficientBalanceReason formats the reason for a refused debit.
func InsufficientBalanceReason(available decimal.Decimal) string {
	return fmt.Sprintf(insufficientReasonPattern, available.StringFixed(2))
}

// FailedDescription annotates a description with the failure reason.
func FailedDescription(description, reason string) string {
	if description == "" {
		return "Failed: " + reason
	}
	return fmt.Sprintf("%s (Failed: %s)", description, reason)
}
