package entity

import (
	"errors"
	"time"
)

// Outcomes of a single OTP verification attempt.
var (
	ErrOtpLocked   = errors.New("account: otp attempt cap reached")
	ErrOtpMismatch = errors.New("account: otp code does not match")
)

type User struct {
	ID        int64
	Email     string
	FullName  string
	Role      string
	Status    UserStatus
	Password  string // hashed
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OtpToken is a single one-time code issued to a user.
//
// Only the bcrypt digest of the code is stored; the plaintext exists in memory
// just long enough to be mailed out.
type OtpToken struct {
	ID           int64
	UserID       int64
	Email        string // denormalized for lookup
	CodeHash     string
	Type         OtpType
	CreatedAt    time.Time
	ExpiresAt    time.Time
	AttemptCount int32
	MaxAttempt   int32
	IsUsed       bool
	UsedAt       *time.Time
}

// Active reports whether the token can still be verified at the given time.
// Locked tokens are still "active": the lock outcome is decided by the caller.
func (t OtpToken) Active(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}

// Locked reports whether the token has exhausted its attempts.
func (t OtpToken) Locked() bool {
	return t.AttemptCount >= t.MaxAttempt
}

// NewOtpToken is the payload for issuing (or re-issuing) a token.
type NewOtpToken struct {
	ID         int64
	UserID     int64
	Email      string
	CodeHash   string
	Type       OtpType
	CreatedAt  time.Time
	ExpiresAt  time.Time
	MaxAttempt int32
}
