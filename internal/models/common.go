package models

import "time"

// AuditFields holds the row timestamps shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at" gorm:"column:created_at;not null"`
	LastUpdatedAt time.Time `db:"last_updated_at" gorm:"column:last_updated_at;not null"`
}
