package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer account. Authentication tokens are issued
// elsewhere; this backend only resolves them to an identity.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Address     *string   `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// OTP is a one-time verification code tied to a user. A user has at most one
// active code; re-sending replaces it.
type OTP struct {
	ID        uuid.UUID `json:"-" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Code      string    `json:"-" db:"code"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SendOTPRequest represents the request payload for requesting a code.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents the request payload for verifying a code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp_code"`
}
