package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/premium"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// PremiumController handles entitlement endpoints.
type PremiumController struct {
	redeemCodeUseCase     *premium.RedeemCodeUseCase
	confirmPaymentUseCase *premium.ConfirmPaymentUseCase
	getStatusUseCase      *premium.GetStatusUseCase
	generateCodeUseCase   *premium.GenerateCodeUseCase
}

// NewPremiumController creates a new premium controller instance.
func NewPremiumController(
	redeemCodeUseCase *premium.RedeemCodeUseCase,
	confirmPaymentUseCase *premium.ConfirmPaymentUseCase,
	getStatusUseCase *premium.GetStatusUseCase,
	generateCodeUseCase *premium.GenerateCodeUseCase,
) *PremiumController {
	return &PremiumController{
		redeemCodeUseCase:     redeemCodeUseCase,
		confirmPaymentUseCase: confirmPaymentUseCase,
		getStatusUseCase:      getStatusUseCase,
		generateCodeUseCase:   generateCodeUseCase,
	}
}

// RedeemCode handles POST /premium/activate requests.
func (c *PremiumController) RedeemCode(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.RedeemCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeActivationCodeTooShort),
		})
		return
	}

	output, err := c.redeemCodeUseCase.Execute(ctx.Request.Context(), premium.RedeemCodeInput{
		UserID: userID,
		Code:   req.Code,
	})
	if err != nil {
		c.handlePremiumError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ActivationResponse{
		IsPremium:        output.IsPremium,
		ActivationMethod: string(output.ActivationMethod),
	})
}

// ConfirmPayment handles POST /premium/payment/confirm requests.
func (c *PremiumController) ConfirmPayment(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodePaymentVerification),
		})
		return
	}

	output, err := c.confirmPaymentUseCase.Execute(ctx.Request.Context(), premium.ConfirmPaymentInput{
		UserID:    userID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		c.handlePremiumError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ActivationResponse{
		IsPremium:        output.IsPremium,
		ActivationMethod: string(entity.ActivationMethodPayment),
	})
}

// GetStatus handles GET /premium/status requests.
func (c *PremiumController) GetStatus(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getStatusUseCase.Execute(ctx.Request.Context(), premium.GetStatusInput{UserID: userID})
	if err != nil {
		c.handlePremiumError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PremiumStatusResponse{
		IsPremium:          output.IsPremium,
		ActivationMethod:   string(output.ActivationMethod),
		PremiumActivatedAt: output.PremiumActivatedAt,
		CategoryLimit:      output.CategoryLimit,
	})
}

// GenerateCode handles POST /premium/codes requests (admin only).
func (c *PremiumController) GenerateCode(ctx *gin.Context) {
	var req dto.GenerateCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	createdBy, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.generateCodeUseCase.Execute(ctx.Request.Context(), premium.GenerateCodeInput{
		CreatedBy:     createdBy,
		Prefix:        req.Prefix,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		c.handlePremiumError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GeneratedCodeResponse{
		Code:      output.Code,
		ExpiresAt: output.ExpiresAt,
	})
}

// handlePremiumError maps premium errors to HTTP responses.
func (c *PremiumController) handlePremiumError(ctx *gin.Context, err error) {
	var premiumErr *domainerror.PremiumError
	if errors.As(err, &premiumErr) {
		ctx.JSON(getStatusCodeForPremiumError(premiumErr.Code), dto.ErrorResponse{
			Error: premiumErr.Message,
			Code:  string(premiumErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
