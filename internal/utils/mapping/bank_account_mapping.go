package mapping

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/models"
)

func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:         d.AccountID,
		UserID:            d.UserID,
		BankName:          d.BankName,
		AccountNumber:     d.AccountNumber,
		AccountHolderName: d.AccountHolderName,
		IFSCCode:          d.IFSCCode,
		IsPrimary:         d.IsPrimary,
		SimulatedBalance:  d.SimulatedBalance,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:         m.AccountID,
		UserID:            m.UserID,
		BankName:          m.BankName,
		AccountNumber:     m.AccountNumber,
		AccountHolderName: m.AccountHolderName,
		IFSCCode:          m.IFSCCode,
		IsPrimary:         m.IsPrimary,
		SimulatedBalance:  m.SimulatedBalance,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
