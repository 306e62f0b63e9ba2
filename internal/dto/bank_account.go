package dto

import (
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountRequest carries the details of the linked funding account.
type BankAccountRequest struct {
	BankName          string `json:"bankName" binding:"required,max=100"`
	AccountNumber     string `json:"accountNumber" binding:"required,numeric,min=9,max=18"`
	AccountHolderName string `json:"accountHolderName" binding:"required,max=100"`
	IFSCCode          string `json:"ifscCode" binding:"required,len=11"`
}

// BankAccountResponse shows the account with its number masked.
type BankAccountResponse struct {
	AccountID         string          `json:"accountID"`
	BankName          string          `json:"bankName"`
	AccountNumber     string          `json:"accountNumber"`
	AccountHolderName string          `json:"accountHolderName"`
	IFSCCode          string          `json:"ifscCode"`
	IsPrimary         bool            `json:"isPrimary"`
	SimulatedBalance  decimal.Decimal `json:"simulatedBalance"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		AccountID:         a.AccountID,
		BankName:          a.BankName,
		AccountNumber:     a.MaskedAccountNumber(),
		AccountHolderName: a.AccountHolderName,
		IFSCCode:          a.IFSCCode,
		IsPrimary:         a.IsPrimary,
		SimulatedBalance:  a.SimulatedBalance,
		CreatedAt:         a.CreatedAt,
	}
}
