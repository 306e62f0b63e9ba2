package mapping

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/models"
)

// ToModelVault converts a domain Vault to a model Vault
func ToModelVault(d domain.Vault) models.Vault {
	return models.Vault{
		VaultID:             d.VaultID,
		UserID:              d.UserID,
		Name:                d.Name,
		Category:            string(d.Category),
		CustomCategoryName:  d.CustomCategoryName,
		Icon:                d.Icon,
		Color:               d.Color,
		MonthlyLimit:        d.MonthlyLimit,
		CurrentSpent:        d.CurrentSpent,
		IsEmergency:         d.IsEmergency,
		EmergencyPINHash:    d.EmergencyPINHash,
		IsActive:            d.IsActive,
		IsDefaultInstantPay: d.IsDefaultInstantPay,
		ResetDate:           d.ResetDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVault converts a model Vault to a domain Vault
func ToDomainVault(m models.Vault) domain.Vault {
	return domain.Vault{
		VaultID:             m.VaultID,
		UserID:              m.UserID,
		Name:                m.Name,
		Category:            domain.VaultCategory(m.Category),
		CustomCategoryName:  m.CustomCategoryName,
		Icon:                m.Icon,
		Color:               m.Color,
		MonthlyLimit:        m.MonthlyLimit,
		CurrentSpent:        m.CurrentSpent,
		IsEmergency:         m.IsEmergency,
		EmergencyPINHash:    m.EmergencyPINHash,
		IsActive:            m.IsActive,
		IsDefaultInstantPay: m.IsDefaultInstantPay,
		ResetDate:           m.ResetDate.UTC(),
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVaultSlice converts a slice of model Vaults to a slice of domain Vaults
func ToDomainVaultSlice(ms []models.Vault) []domain.Vault {
	ds := make([]domain.Vault, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVault(m)
	}
	return ds
}
