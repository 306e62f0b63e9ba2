package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a persisted payment attempt. VaultID and OriginalVaultID are NULL when unset.
type Transaction struct {
	TransactionID   string          `db:"transaction_id" gorm:"column:transaction_id;primaryKey;size:36"`
	UserID          string          `db:"user_id" gorm:"column:user_id;size:36;index:idx_transactions_user_date,priority:1;not null"`
	VaultID         *string         `db:"vault_id" gorm:"column:vault_id;size:36;index"`
	OriginalVaultID *string         `db:"original_vault_id" gorm:"column:original_vault_id;size:36"`
	MerchantName    string          `db:"merchant_name" gorm:"column:merchant_name;size:200;not null"`
	Amount          decimal.Decimal `db:"amount" gorm:"column:amount;type:text;not null"`
	TransactionType string          `db:"transaction_type" gorm:"column:transaction_type;size:10;not null"`
	PaymentMethod   string          `db:"payment_method" gorm:"column:payment_method;size:20;not null"`
	Description     string          `db:"description" gorm:"column:description;type:text"`
	TransactionDate time.Time       `db:"transaction_date" gorm:"column:transaction_date;index:idx_transactions_user_date,priority:2;not null"`
	Status          string          `db:"status" gorm:"column:status;size:10;not null"`
	VaultChanged    bool            `db:"vault_changed" gorm:"column:vault_changed;not null;default:false"`
	VaultChangedAt  *time.Time      `db:"vault_changed_at" gorm:"column:vault_changed_at"`

	// Associations exist only so AutoMigrate declares the foreign keys.
	User          *User  `db:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
	Vault         *Vault `db:"-" gorm:"foreignKey:VaultID;references:VaultID;constraint:OnDelete:RESTRICT"`
	OriginalVault *Vault `db:"-" gorm:"foreignKey:OriginalVaultID;references:VaultID;constraint:OnDelete:RESTRICT"`
}

func (Transaction) TableName() string { return "transactions" }

// Reassignment is one append-only row of the vault change log.
type Reassignment struct {
	ReassignmentID  string    `db:"reassignment_id" gorm:"column:reassignment_id;primaryKey;size:36"`
	TransactionID   string    `db:"transaction_id" gorm:"column:transaction_id;size:36;index;not null"`
	FromVaultID     string    `db:"from_vault_id" gorm:"column:from_vault_id;size:36;not null"`
	ToVaultID       string    `db:"to_vault_id" gorm:"column:to_vault_id;size:36;not null"`
	ChangedByUserID string    `db:"changed_by_user_id" gorm:"column:changed_by_user_id;size:36;index;not null"`
	ChangedAt       time.Time `db:"changed_at" gorm:"column:changed_at;not null"`

	Transaction   *Transaction `db:"-" gorm:"foreignKey:TransactionID;references:TransactionID;constraint:OnDelete:CASCADE"`
	FromVault     *Vault       `db:"-" gorm:"foreignKey:FromVaultID;references:VaultID;constraint:OnDelete:RESTRICT"`
	ToVault       *Vault       `db:"-" gorm:"foreignKey:ToVaultID;references:VaultID;constraint:OnDelete:RESTRICT"`
	ChangedByUser *User        `db:"-" gorm:"foreignKey:ChangedByUserID;references:UserID;constraint:OnDelete:RESTRICT"`
}

func (Reassignment) TableName() string { return "vault_reassignments" }
