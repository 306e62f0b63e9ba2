package mapping

import (
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		FullName:       d.FullName,
		MobileNumber:   d.MobileNumber,
		Email:          d.Email,
		PINHash:        d.PINHash,
		FailedAttempts: d.FailedAttempts,
		LockoutUntil:   d.LockoutUntil,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		FullName:       m.FullName,
		MobileNumber:   m.MobileNumber,
		Email:          m.Email,
		PINHash:        m.PINHash,
		FailedAttempts: m.FailedAttempts,
		LockoutUntil:   m.LockoutUntil,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
