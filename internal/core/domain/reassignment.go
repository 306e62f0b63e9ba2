package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reassignment is an append-only audit record of one vault change on a transaction.
type Reassignment struct {
	ReassignmentID  string    `json:"reassignmentID"`
	TransactionID   string    `json:"transactionID"`
	FromVaultID     string    `json:"fromVaultID"`
	ToVaultID       string    `json:"toVaultID"`
	ChangedByUserID string    `json:"changedByUserID"`
	ChangedAt       time.Time `json:"changedAt"`
}

// ReassignmentPlan is everything a store needs to move one transaction's spend
// from one vault to another in a single atomic unit.
type ReassignmentPlan struct {
	TransactionID   string
	FromVaultID     string
	ToVaultID       string
	Amount          decimal.Decimal
	OriginalVaultID string // Value to store; already resolved for repeat reassignments
	ActingUserID    string
	ChangedAt       time.Time
	Record          Reassignment
}

// NewReassignmentPlan builds the plan for moving txn onto toVaultID.
// original_vault_id is only ever set once, on the first reassignment.
func NewReassignmentPlan(txn Transaction, toVaultID, reassignmentID, actingUserID string, now time.Time) ReassignmentPlan {
	return ReassignmentPlan{
		TransactionID:   txn.TransactionID,
		FromVaultID:     txn.VaultID,
		ToVaultID:       toVaultID,
		Amount:          txn.Amount,
		OriginalVaultID: txn.AttributionVaultID(),
		ActingUserID:    actingUserID,
		ChangedAt:       now,
		Record: Reassignment{
			ReassignmentID:  reassignmentID,
			TransactionID:   txn.TransactionID,
			FromVaultID:     txn.VaultID,
			ToVaultID:       toVaultID,
			ChangedByUserID: actingUserID,
			ChangedAt:       now,
		},
	}
}

// ClampedSpend returns spent - amount floored at zero.
func ClampedSpend(spent, amount decimal.Decimal) decimal.Decimal {
	return decimal.Max(spent.Sub(amount), decimal.Zero)
}
