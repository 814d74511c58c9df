package models

import "time"

// Token records an issued JWT so it can be revoked at logout.
// The auth middleware rejects tokens whose record is marked revoked.
type Token struct {
	Base
	Token     string    `gorm:"uniqueIndex;not null;size:512" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
