package entity

import "time"

// ActivationCode is a redeemable premium unlock code. Codes are single-use
// unless MaxUses says otherwise, may expire, and can be deactivated without
// deletion.
type ActivationCode struct {
	Code        string
	Active      bool
	Used        bool
	MaxUses     int
	CurrentUses int
	PaymentID   string
	Kind        string
	ExpiresAt   *time.Time
	CreatedBy   string
	UsedBy      string
	UsedAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewActivationCode creates an active, unused manual code.
func NewActivationCode(code, createdBy string, expiresAt *time.Time) *ActivationCode {
	now := time.Now().UTC()
	return &ActivationCode{
		Code:      code,
		Active:    true,
		MaxUses:   1,
		Kind:      "manual",
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired reports whether the code's expiry, if any, has passed.
func (c *ActivationCode) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
