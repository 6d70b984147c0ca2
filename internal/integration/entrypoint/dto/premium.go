package dto

import "time"

// RedeemCodeRequest represents the request body for redeeming an activation code.
type RedeemCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ConfirmPaymentRequest represents the request body for confirming a payment.
type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// GenerateCodeRequest represents the request body for minting an activation code.
type GenerateCodeRequest struct {
	Prefix        string `json:"prefix"`
	ExpiresInDays int    `json:"expires_in_days"`
}

// PremiumStatusResponse represents the entitlement state of the caller.
type PremiumStatusResponse struct {
	IsPremium          bool       `json:"is_premium"`
	ActivationMethod   string     `json:"activation_method,omitempty"`
	PremiumActivatedAt *time.Time `json:"premium_activated_at,omitempty"`
	// CategoryLimit is 0 for premium accounts (unlimited).
	CategoryLimit int `json:"category_limit"`
}

// ActivationResponse represents the outcome of a redemption or confirmation.
type ActivationResponse struct {
	IsPremium        bool   `json:"is_premium"`
	ActivationMethod string `json:"activation_method,omitempty"`
}

// GeneratedCodeResponse represents a freshly minted activation code.
type GeneratedCodeResponse struct {
	Code      string     `json:"code"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
