package domain

import (
	"regexp"
	"time"
)

var mobileNumberPattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// User represents a ledger owner in the domain. Identity is the mobile number plus a 6 digit PIN.
type User struct {
	UserID         string     `json:"userID"`
	FullName       string     `json:"fullName"`
	MobileNumber   string     `json:"mobileNumber"`
	Email          string     `json:"email,omitempty"`
	PINHash        string     `json:"-"`
	FailedAttempts int        `json:"-"`
	LockoutUntil   *time.Time `json:"-"`
	AuditFields
}

// IsLocked reports whether the user is inside a lockout window.
func (u User) IsLocked(now time.Time) bool {
	return u.LockoutUntil != nil && now.Before(*u.LockoutUntil)
}

// IsValidMobileNumber checks the 10 digit mobile format starting with 6-9.
func IsValidMobileNumber(mobile string) bool {
	return mobileNumberPattern.MatchString(mobile)
}
