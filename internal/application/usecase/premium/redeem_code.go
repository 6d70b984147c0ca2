// Package premium contains the entitlement use cases: code redemption,
// payment confirmation, status reporting, and code administration.
package premium

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

const minCodeLength = 6

// RedeemCodeInput represents the input for redeeming an activation code.
type RedeemCodeInput struct {
	UserID uuid.UUID
	Code   string
}

// RedeemCodeOutput represents the output of a redemption.
type RedeemCodeOutput struct {
	IsPremium        bool
	ActivationMethod entity.ActivationMethod
}

// RedeemCodeUseCase activates premium from a code. Resolution order: the
// configured special codes, then the code registry, then the payment gateway
// (treating the code as a payment ID). Verification failures never grant the
// entitlement.
type RedeemCodeUseCase struct {
	userRepo     adapter.UserRepository
	codeRepo     adapter.ActivationCodeRepository
	gateway      adapter.PaymentGateway
	email        adapter.EmailSender
	clock        adapter.Clock
	specialCodes map[string]bool
}

// NewRedeemCodeUseCase creates a new RedeemCodeUseCase instance.
func NewRedeemCodeUseCase(
	userRepo adapter.UserRepository,
	codeRepo adapter.ActivationCodeRepository,
	gateway adapter.PaymentGateway,
	email adapter.EmailSender,
	clock adapter.Clock,
	specialCodes []string,
) *RedeemCodeUseCase {
	special := make(map[string]bool, len(specialCodes))
	for _, code := range specialCodes {
		special[strings.ToUpper(strings.TrimSpace(code))] = true
	}
	return &RedeemCodeUseCase{
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		gateway:      gateway,
		email:        email,
		clock:        clock,
		specialCodes: special,
	}
}

// Execute performs the redemption.
func (uc *RedeemCodeUseCase) Execute(ctx context.Context, input RedeemCodeInput) (*RedeemCodeOutput, error) {
	code := strings.TrimSpace(input.Code)
	if len(code) < minCodeLength {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodeActivationCodeTooShort,
			fmt.Sprintf("activation code must have at least %d characters", minCodeLength),
			domainerror.ErrActivationCodeTooShort,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsPremium {
		return &RedeemCodeOutput{IsPremium: true, ActivationMethod: user.ActivationMethod}, nil
	}

	if uc.specialCodes[strings.ToUpper(code)] {
		return uc.activate(ctx, user, entity.ActivationMethodManualCode, code, "special_"+strings.ToUpper(code))
	}

	registered, err := uc.codeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if registered != nil {
		if err := uc.checkRegisteredCode(registered); err != nil {
			return nil, err
		}
		if err := uc.codeRepo.MarkUsed(ctx, registered.Code, user.Email, uc.clock.Now()); err != nil {
			slog.Warn("failed to mark activation code used", "code", registered.Code, "error", err)
		}
		return uc.activate(ctx, user, entity.ActivationMethodManualCode, registered.Code, registered.PaymentID)
	}

	// Unknown to the registry: the code may be a payment ID pasted from the
	// checkout page.
	status, err := uc.gateway.CheckPaymentStatus(ctx, code)
	if err != nil {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentVerification,
			"could not verify payment",
			domainerror.ErrPaymentVerification,
		)
	}
	switch status {
	case adapter.PaymentStatusApproved:
		return uc.activate(ctx, user, entity.ActivationMethodPayment, "", code)
	case adapter.PaymentStatusPending:
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentPending,
			"payment is still pending",
			domainerror.ErrPaymentPending,
		)
	case adapter.PaymentStatusRejected:
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePaymentRejected,
			"payment was rejected",
			domainerror.ErrPaymentRejected,
		)
	default:
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodeActivationCodeNotFound,
			"activation code not recognized",
			domainerror.ErrActivationCodeNotFound,
		)
	}
}

func (uc *RedeemCodeUseCase) checkRegisteredCode(code *entity.ActivationCode) error {
	switch {
	case !code.Active:
		return domainerror.NewPremiumError(
			domainerror.ErrCodeActivationCodeInactive,
			"activation code is deactivated",
			domainerror.ErrActivationCodeInactive,
		)
	case code.Used || (code.MaxUses > 0 && code.CurrentUses >= code.MaxUses):
		return domainerror.NewPremiumError(
			domainerror.ErrCodeActivationCodeUsed,
			"activation code was already used",
			domainerror.ErrActivationCodeUsed,
		)
	case code.IsExpired(uc.clock.Now()):
		return domainerror.NewPremiumError(
			domainerror.ErrCodeActivationCodeExpired,
			"activation code expired",
			domainerror.ErrActivationCodeExpired,
		)
	}
	return nil
}

func (uc *RedeemCodeUseCase) activate(ctx context.Context, user *entity.User, method entity.ActivationMethod, code, paymentID string) (*RedeemCodeOutput, error) {
	user.ActivatePremium(method, code, paymentID, uc.clock.Now())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if uc.email != nil {
		if err := uc.email.Send(ctx, adapter.SendEmailInput{
			To:      user.Email,
			Subject: "Premium ativado",
			HTML:    premiumActivatedHTML(user.Name),
			Text:    "Seu acesso premium foi ativado. Aproveite!",
		}); err != nil {
			slog.Warn("failed to send premium activation email", "user_id", user.ID, "error", err)
		}
	}

	slog.Info("premium activated", "user_id", user.ID, "method", method)
	return &RedeemCodeOutput{IsPremium: true, ActivationMethod: method}, nil
}

func premiumActivatedHTML(name string) string {
	return fmt.Sprintf(
		"<h2>Olá, %s!</h2><p>Seu acesso premium foi ativado. Agora você pode criar categorias ilimitadas e limpar meses inteiros.</p>",
		name,
	)
}
