package models

import "github.com/shopspring/decimal"

// BankAccount is a user's linked funding account. At most one per user is primary.
type BankAccount struct {
	AccountID         string          `db:"account_id" gorm:"column:account_id;primaryKey;size:36"`
	UserID            string          `db:"user_id" gorm:"column:user_id;size:36;index;not null"`
	BankName          string          `db:"bank_name" gorm:"column:bank_name;size:100;not null"`
	AccountNumber     string          `db:"account_number" gorm:"column:account_number;size:18;not null"`
	AccountHolderName string          `db:"account_holder_name" gorm:"column:account_holder_name;size:100;not null"`
	IFSCCode          string          `db:"ifsc_code" gorm:"column:ifsc_code;size:11;not null"`
	IsPrimary         bool            `db:"is_primary" gorm:"column:is_primary;not null;default:false"`
	SimulatedBalance  decimal.Decimal `db:"simulated_balance" gorm:"column:simulated_balance;type:text;not null"`
	AuditFields       `gorm:"embedded"`

	User *User `db:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (BankAccount) TableName() string { return "bank_accounts" }
