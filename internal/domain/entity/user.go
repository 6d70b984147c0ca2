// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivationMethod records how a user's premium entitlement was granted.
type ActivationMethod string

const (
	ActivationMethodManualCode ActivationMethod = "manual_code"
	ActivationMethodPayment    ActivationMethod = "payment"
)

// User represents an account in the Budget Tracker system. Exactly one user
// owns each budget document.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	IsPremium          bool
	PaymentID          string
	ActivationMethod   ActivationMethod
	ActivationCode     string
	PremiumActivatedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new free-tier User.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ActivatePremium grants the premium entitlement.
func (u *User) ActivatePremium(method ActivationMethod, code, paymentID string, at time.Time) {
	u.IsPremium = true
	u.ActivationMethod = method
	u.ActivationCode = code
	u.PaymentID = paymentID
	u.PremiumActivatedAt = &at
	u.UpdatedAt = at
}
