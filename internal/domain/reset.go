package domain

import "time"

// PasswordResetToken is keyed by email: at most one live token per account,
// a new request overwrites the previous one. Single-use, short-lived.
type PasswordResetToken struct {
	Email     string    `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
