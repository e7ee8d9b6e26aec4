package model

import (
	"time"
)

// User is the identity a request runs as. The email verification columns
// are owned by this service; the rest of the row belongs to the identity
// provider.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	// VerificationTokenHash is the SHA-256 of the outstanding verification token.
	VerificationTokenHash *string   `json:"-"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// HasPendingVerification reports whether a verification token is outstanding.
func (u *User) HasPendingVerification() bool {
	return u.VerificationTokenHash != nil && *u.VerificationTokenHash != ""
}
