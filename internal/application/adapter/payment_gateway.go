package adapter

import "context"

// PaymentStatus is the provider's verdict on a payment.
type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentGateway is the payment collaborator contract. The core only consumes
// the status; webhook signature verification and provider details stay on the
// other side of this interface.
type PaymentGateway interface {
	CheckPaymentStatus(ctx context.Context, paymentID string) (PaymentStatus, error)
}
