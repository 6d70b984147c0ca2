package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget document endpoints.
type BudgetController struct {
	getBudgetUseCase      *budget.GetBudgetUseCase
	createCategoryUseCase *budget.CreateCategoryUseCase
	updateCategoryUseCase *budget.UpdateCategoryUseCase
	deleteCategoryUseCase *budget.DeleteCategoryUseCase
	setCellValueUseCase   *budget.SetCellValueUseCase
	clearMonthUseCase     *budget.ClearMonthUseCase
	resetDocumentUseCase  *budget.ResetDocumentUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getBudgetUseCase *budget.GetBudgetUseCase,
	createCategoryUseCase *budget.CreateCategoryUseCase,
	updateCategoryUseCase *budget.UpdateCategoryUseCase,
	deleteCategoryUseCase *budget.DeleteCategoryUseCase,
	setCellValueUseCase *budget.SetCellValueUseCase,
	clearMonthUseCase *budget.ClearMonthUseCase,
	resetDocumentUseCase *budget.ResetDocumentUseCase,
) *BudgetController {
	return &BudgetController{
		getBudgetUseCase:      getBudgetUseCase,
		createCategoryUseCase: createCategoryUseCase,
		updateCategoryUseCase: updateCategoryUseCase,
		deleteCategoryUseCase: deleteCategoryUseCase,
		setCellValueUseCase:   setCellValueUseCase,
		clearMonthUseCase:     clearMonthUseCase,
		resetDocumentUseCase:  resetDocumentUseCase,
	}
}

// GetBudget handles GET /budget requests.
func (c *BudgetController) GetBudget(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getBudgetUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetDocumentResponse(output.Document))
}

// CreateCategory handles POST /budget/categories requests.
func (c *BudgetController) CreateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeCategoryNameRequired),
		})
		return
	}

	output, err := c.createCategoryUseCase.Execute(ctx.Request.Context(), budget.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// UpdateCategory handles PUT /budget/categories/:id requests.
func (c *BudgetController) UpdateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeCategoryNameRequired),
		})
		return
	}

	output, err := c.updateCategoryUseCase.Execute(ctx.Request.Context(), budget.UpdateCategoryInput{
		UserID:     userID,
		CategoryID: ctx.Param("id"),
		Name:       req.Name,
		Type:       req.Type,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// DeleteCategory handles DELETE /budget/categories/:id requests.
func (c *BudgetController) DeleteCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	_, err := c.deleteCategoryUseCase.Execute(ctx.Request.Context(), budget.DeleteCategoryInput{
		UserID:     userID,
		CategoryID: ctx.Param("id"),
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}

// SetCellValue handles PUT /budget/cells requests.
func (c *BudgetController) SetCellValue(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.SetCellValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidMonthIndex),
		})
		return
	}

	output, err := c.setCellValueUseCase.Execute(ctx.Request.Context(), budget.SetCellValueInput{
		UserID:     userID,
		MonthIndex: req.MonthIndex,
		CategoryID: req.CategoryID,
		RawValue:   req.Value,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CellValueResponse{
		MonthIndex:  req.MonthIndex,
		CategoryID:  req.CategoryID,
		ParsedValue: output.ParsedValue,
	})
}

// ClearMonth handles DELETE /budget/months/:index requests.
func (c *BudgetController) ClearMonth(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month index",
			Code:  string(domainerror.ErrCodeInvalidMonthIndex),
		})
		return
	}

	if _, err := c.clearMonthUseCase.Execute(ctx.Request.Context(), budget.ClearMonthInput{
		UserID:     userID,
		MonthIndex: index,
	}); err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Month cleared"})
}

// ResetDocument handles DELETE /budget requests.
func (c *BudgetController) ResetDocument(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.resetDocumentUseCase.Execute(ctx.Request.Context(), budget.ResetDocumentInput{UserID: userID})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetDocumentResponse(output.Document))
}

// handleBudgetError maps budget and premium domain errors to HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	var premiumErr *domainerror.PremiumError
	if errors.As(err, &premiumErr) {
		ctx.JSON(getStatusCodeForPremiumError(premiumErr.Code), dto.ErrorResponse{
			Error: premiumErr.Message,
			Code:  string(premiumErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBudgetError maps budget error codes to HTTP status codes.
func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeUnknownGroup,
		domainerror.ErrCodeInvalidMonthIndex:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodePresetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePresetInUse,
		domainerror.ErrCodeCategoryQuotaExceeded:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForPremiumError maps premium error codes to HTTP status codes.
func getStatusCodeForPremiumError(code domainerror.PremiumErrorCode) int {
	switch code {
	case domainerror.ErrCodeActivationCodeTooShort:
		return http.StatusBadRequest
	case domainerror.ErrCodeActivationCodeNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeActivationCodeInactive,
		domainerror.ErrCodeActivationCodeUsed,
		domainerror.ErrCodeActivationCodeExpired,
		domainerror.ErrCodePaymentPending,
		domainerror.ErrCodePaymentRejected:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodePremiumRequired:
		return http.StatusForbidden
	case domainerror.ErrCodePaymentVerification:
		return http.StatusBadGateway
	case domainerror.ErrCodeInsightUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthorized writes the standard missing-authentication response.
func respondUnauthorized(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
