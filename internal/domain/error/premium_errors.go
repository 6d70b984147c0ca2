package error

import "errors"

// Premium domain errors.
var (
	// ErrActivationCodeNotFound is returned when a code matches no registry entry.
	ErrActivationCodeNotFound = errors.New("activation code not found")

	// ErrActivationCodeTooShort is returned for codes under the minimum length.
	ErrActivationCodeTooShort = errors.New("activation code too short")

	// ErrActivationCodeInactive is returned for deactivated codes.
	ErrActivationCodeInactive = errors.New("activation code deactivated")

	// ErrActivationCodeUsed is returned for already redeemed single-use codes.
	ErrActivationCodeUsed = errors.New("activation code already used")

	// ErrActivationCodeExpired is returned for codes past their expiry.
	ErrActivationCodeExpired = errors.New("activation code expired")

	// ErrPaymentPending is returned when the payment exists but is not approved yet.
	ErrPaymentPending = errors.New("payment pending")

	// ErrPaymentRejected is returned when the payment was rejected.
	ErrPaymentRejected = errors.New("payment rejected")

	// ErrPaymentVerification is returned when the payment collaborator cannot be
	// reached or answers garbage. The premium flag fails closed.
	ErrPaymentVerification = errors.New("payment verification failed")

	// ErrPremiumRequired is returned when a premium-only operation is attempted
	// by a free account.
	ErrPremiumRequired = errors.New("premium required")

	// ErrInsightUnavailable is returned when the insight service is not configured.
	ErrInsightUnavailable = errors.New("insight service unavailable")
)

// PremiumErrorCode defines error codes for premium errors.
// Format: PRM-XXYYYY where XX is category and YYYY is specific error.
type PremiumErrorCode string

const (
	// Activation errors (01XXXX)
	ErrCodeActivationCodeNotFound PremiumErrorCode = "PRM-010001"
	ErrCodeActivationCodeTooShort PremiumErrorCode = "PRM-010002"
	ErrCodeActivationCodeInactive PremiumErrorCode = "PRM-010003"
	ErrCodeActivationCodeUsed     PremiumErrorCode = "PRM-010004"
	ErrCodeActivationCodeExpired  PremiumErrorCode = "PRM-010005"
	ErrCodePaymentPending         PremiumErrorCode = "PRM-010006"
	ErrCodePaymentRejected        PremiumErrorCode = "PRM-010007"

	// Verification errors (02XXXX)
	ErrCodePaymentVerification PremiumErrorCode = "PRM-020001"

	// Entitlement errors (03XXXX)
	ErrCodePremiumRequired    PremiumErrorCode = "PRM-030001"
	ErrCodeInsightUnavailable PremiumErrorCode = "PRM-030002"
)

// PremiumError represents a premium error with code and message.
type PremiumError struct {
	Code    PremiumErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PremiumError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PremiumError) Unwrap() error {
	return e.Err
}

// NewPremiumError creates a new PremiumError with the given code and message.
func NewPremiumError(code PremiumErrorCode, message string, err error) *PremiumError {
	return &PremiumError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
