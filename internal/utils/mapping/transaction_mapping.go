package mapping

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/models"
)

// NullableID maps an empty id to nil so it is stored as NULL.
func NullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// FromNullableID maps a NULL id back to the empty string.
func FromNullableID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		VaultID:         NullableID(d.VaultID),
		OriginalVaultID: NullableID(d.OriginalVaultID),
		MerchantName:    d.MerchantName,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		PaymentMethod:   string(d.PaymentMethod),
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		Status:          string(d.Status),
		VaultChanged:    d.VaultChanged,
		VaultChangedAt:  d.VaultChangedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		VaultID:         FromNullableID(m.VaultID),
		OriginalVaultID: FromNullableID(m.OriginalVaultID),
		MerchantName:    m.MerchantName,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		Description:     m.Description,
		TransactionDate: m.TransactionDate.UTC(),
		Status:          domain.TransactionStatus(m.Status),
		VaultChanged:    m.VaultChanged,
	}
	if m.VaultChangedAt != nil {
		at := m.VaultChangedAt.UTC()
		d.VaultChangedAt = &at
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelReassignment converts a domain Reassignment to a model Reassignment
func ToModelReassignment(d domain.Reassignment) models.Reassignment {
	return models.Reassignment{
		ReassignmentID:  d.ReassignmentID,
		TransactionID:   d.TransactionID,
		FromVaultID:     d.FromVaultID,
		ToVaultID:       d.ToVaultID,
		ChangedByUserID: d.ChangedByUserID,
		ChangedAt:       d.ChangedAt,
	}
}

// ToDomainReassignmentSlice converts a slice of model Reassignments to a slice of domain Reassignments
func ToDomainReassignmentSlice(ms []models.Reassignment) []domain.Reassignment {
	ds := make([]domain.Reassignment, len(ms))
	for i, m := range ms {
		ds[i] = domain.Reassignment{
			ReassignmentID:  m.ReassignmentID,
			TransactionID:   m.TransactionID,
			FromVaultID:     m.FromVaultID,
			ToVaultID:       m.ToVaultID,
			ChangedByUserID: m.ChangedByUserID,
			ChangedAt:       m.ChangedAt,
		}
		ds[i].ChangedAt = m.ChangedAt.UTC()
	}
	return ds
}
