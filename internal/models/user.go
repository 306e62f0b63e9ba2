package models

import (
	"time"
)

// User represents an account holder authenticating with mobile number and PIN.
type User struct {
	UserID         string     `db:"user_id" gorm:"column:user_id;primaryKey;size:36"`
	FullName       string     `db:"full_name" gorm:"column:full_name;size:100;not null"`
	MobileNumber   string     `db:"mobile_number" gorm:"column:mobile_number;size:10;uniqueIndex;not null"`
	Email          string     `db:"email" gorm:"column:email;size:255"`
	PINHash        string     `db:"pin_hash" gorm:"column:pin_hash;not null"`
	FailedAttempts int        `db:"failed_attempts" gorm:"column:failed_attempts;not null;default:0"`
	LockoutUntil   *time.Time `db:"lockout_until" gorm:"column:lockout_until"`
	AuditFields    `gorm:"embedded"`
}

func (User) TableName() string { return "users" }
