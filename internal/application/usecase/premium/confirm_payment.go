package premium

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ConfirmPaymentInput represents the input for confirming a payment.
type ConfirmPaymentInput struct {
	UserID    uuid.UUID
	PaymentID string
}

// ConfirmPaymentOutput represents the output of a payment confirmation.
type ConfirmPaymentOutput struct {
	IsPremium bool
	Status    adapter.PaymentStatus
}

// ConfirmPaymentUseCase verifies a payment with the gateway and, on approval,
// grants premium. Anything short of an explicit approval leaves the account
// on the free tier.
type ConfirmPaymentUseCase struct {
	userRepo adapter.UserRepository
	gateway  adapter.PaymentGateway
	email    adapter.EmailSender
	clock    adapter.Clock
}

// NewConfirmPaymentUseCase creates a new ConfirmPaymentUseCase instance.
func NewConfirmPaymentUseCase(
	userRepo adapter.UserRepository,
	gateway adapter.PaymentGateway,
	email adapter.EmailSender,
	clock adapter.Clock,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{userRepo: userRepo, gateway: gateway, email: email, clock: clock}
}

// Execute performs the confirmation.
func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, input ConfirmPaymentInput) (*ConfirmPaymentOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsPremium {
		return &ConfirmPaymentOutput{IsPremium: true, Status: adapter.PaymentStatusApproved}, nil
	}

	status, err := uc.gateway.CheckPaymentStatus(ctx, input.PaymentID)
	if err != nil {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentVerification,
			"could not verify payment",
			domainerror.ErrPaymentVerification,
		)
	}

	switch status {
	case adapter.PaymentStatusApproved:
		user.ActivatePremium(entity.ActivationMethodPayment, "", input.PaymentID, uc.clock.Now())
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		if uc.email != nil {
			if err := uc.email.Send(ctx, adapter.SendEmailInput{
				To:      user.Email,
				Subject: "Premium ativado",
				HTML:    premiumActivatedHTML(user.Name),
				Text:    "Seu pagamento foi confirmado e o acesso premium foi ativado.",
			}); err != nil {
				slog.Warn("failed to send premium activation email", "user_id", user.ID, "error", err)
			}
		}
		slog.Info("premium activated", "user_id", user.ID, "method", entity.ActivationMethodPayment)
		return &ConfirmPaymentOutput{IsPremium: true, Status: status}, nil
	case adapter.PaymentStatusPending:
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentPending,
			"payment is still pending",
			domainerror.ErrPaymentPending,
		)
	default:
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentRejected,
			"payment was rejected",
			domainerror.ErrPaymentRejected,
		)
	}
}
