package dto

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest is a payment attempt. VaultID is ignored for instant pay.
type PaymentRequest struct {
	VaultID      string               `json:"vaultID"`
	MerchantName string               `json:"merchantName" binding:"required,max=120"`
	Amount       decimal.Decimal      `json:"amount"`
	Description  string               `json:"description" binding:"max=255"`
	Method       domain.PaymentMethod `json:"method" binding:"required,oneof=vault_based instant_pay emergency"`
	EmergencyPIN string               `json:"emergencyPin" binding:"omitempty,pin6"`
}

// ValidatePaymentRequest asks whether a vault could fund an amount right now.
type ValidatePaymentRequest struct {
	VaultID   string          `json:"vaultID" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Emergency bool            `json:"emergency"`
}

// ValidatePaymentResponse is the dry-run result.
type ValidatePaymentResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
