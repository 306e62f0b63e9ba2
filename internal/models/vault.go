package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vault is the persisted budget envelope.
// Money columns are NUMERIC(14,2) in PostgreSQL and exact decimal text in SQLite.
type Vault struct {
	VaultID             string          `db:"vault_id" gorm:"column:vault_id;primaryKey;size:36"`
	UserID              string          `db:"user_id" gorm:"column:user_id;size:36;index;not null"`
	Name                string          `db:"name" gorm:"column:name;size:100;not null"`
	Category            string          `db:"category" gorm:"column:category;size:20;not null"`
	CustomCategoryName  string          `db:"custom_category_name" gorm:"column:custom_category_name;size:60"`
	Icon                string          `db:"icon" gorm:"column:icon;size:16"`
	Color               string          `db:"color" gorm:"column:color;size:7"`
	MonthlyLimit        decimal.Decimal `db:"monthly_limit" gorm:"column:monthly_limit;type:text;not null"`
	CurrentSpent        decimal.Decimal `db:"current_spent" gorm:"column:current_spent;type:text;not null"`
	IsEmergency         bool            `db:"is_emergency" gorm:"column:is_emergency;not null;default:false"`
	EmergencyPINHash    string          `db:"emergency_pin_hash" gorm:"column:emergency_pin_hash"`
	IsActive            bool            `db:"is_active" gorm:"column:is_active;not null;default:true"`
	IsDefaultInstantPay bool            `db:"is_default_instant_pay" gorm:"column:is_default_instant_pay;not null;default:false"`
	ResetDate           time.Time       `db:"reset_date" gorm:"column:reset_date;not null"`
	AuditFields         `gorm:"embedded"`

	User *User `db:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Vault) TableName() string { return "vaults" }
