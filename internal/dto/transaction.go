package dto

import (
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a payment record.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	VaultID         string                   `json:"vaultID,omitempty"`
	OriginalVaultID string                   `json:"originalVaultID,omitempty"`
	MerchantName    string                   `json:"merchantName"`
	Amount          decimal.Decimal          `json:"amount"`
	TransactionType domain.TransactionType   `json:"transactionType"`
	PaymentMethod   domain.PaymentMethod     `json:"paymentMethod"`
	Description     string                   `json:"description"`
	TransactionDate time.Time                `json:"transactionDate"`
	Status          domain.TransactionStatus `json:"status"`
	VaultChanged    bool                     `json:"vaultChanged"`
	VaultChangedAt  *time.Time               `json:"vaultChangedAt,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	VaultID    string  `form:"vaultID"`
	Method     string  `form:"method" binding:"omitempty,oneof=vault_based instant_pay emergency"`
	Status     string  `form:"status" binding:"omitempty,oneof=success failed pending"`
	Reassigned bool    `form:"reassigned"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ReassignTransactionRequest moves a transaction onto another vault.
type ReassignTransactionRequest struct {
	VaultID string `json:"vaultID" binding:"required"`
}

// ReassignTransactionResponse reports the reassignment outcome.
type ReassignTransactionResponse struct {
	Reassigned  bool                 `json:"reassigned"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ReassignmentResponse is one audit log entry.
type ReassignmentResponse struct {
	ReassignmentID  string    `json:"reassignmentID"`
	TransactionID   string    `json:"transactionID"`
	FromVaultID     string    `json:"fromVaultID"`
	ToVaultID       string    `json:"toVaultID"`
	ChangedByUserID string    `json:"changedByUserID"`
	ChangedAt       time.Time `json:"changedAt"`
}

// ListReassignmentsResponse wraps the reassignment log entries.
type ListReassignmentsResponse struct {
	Reassignments []ReassignmentResponse `json:"reassignments"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		VaultID:         t.VaultID,
		OriginalVaultID: t.OriginalVaultID,
		MerchantName:    t.MerchantName,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		PaymentMethod:   t.PaymentMethod,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		Status:          t.Status,
		VaultChanged:    t.VaultChanged,
		VaultChangedAt:  t.VaultChangedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to a ListTransactionsResponse
func ToListTransactionResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}

// ToListReassignmentResponse converts reassignment records to their DTO list
func ToListReassignmentResponse(records []domain.Reassignment) ListReassignmentsResponse {
	res := make([]ReassignmentResponse, len(records))
	for i, r := range records {
		res[i] = ReassignmentResponse(r)
	}
	return ListReassignmentsResponse{Reassignments: res}
}
