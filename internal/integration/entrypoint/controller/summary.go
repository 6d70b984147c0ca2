package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/insight"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// SummaryController handles aggregation and insight endpoints.
type SummaryController struct {
	getSummaryUseCase        *summary.GetSummaryUseCase
	getMonthBreakdownUseCase *summary.GetMonthBreakdownUseCase
	getInsightUseCase        *insight.GetInsightUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getSummaryUseCase *summary.GetSummaryUseCase,
	getMonthBreakdownUseCase *summary.GetMonthBreakdownUseCase,
	getInsightUseCase *insight.GetInsightUseCase,
) *SummaryController {
	return &SummaryController{
		getSummaryUseCase:        getSummaryUseCase,
		getMonthBreakdownUseCase: getMonthBreakdownUseCase,
		getInsightUseCase:        getInsightUseCase,
	}
}

// GetSummary handles GET /budget/summary requests.
func (c *SummaryController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{UserID: userID})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToYearSummaryResponse(output.Summary))
}

// GetMonthBreakdown handles GET /budget/summary/months/:index requests.
func (c *SummaryController) GetMonthBreakdown(ctx *gin.Context) {
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

	output, err := c.getMonthBreakdownUseCase.Execute(ctx.Request.Context(), summary.GetMonthBreakdownInput{
		UserID:     userID,
		MonthIndex: index,
	})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthBreakdownResponse(output))
}

// GetInsight handles GET /budget/insights requests.
func (c *SummaryController) GetInsight(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getInsightUseCase.Execute(ctx.Request.Context(), insight.GetInsightInput{UserID: userID})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InsightResponse{Insight: output.Insight})
}

// handleSummaryError maps summary and insight errors to HTTP responses.
func (c *SummaryController) handleSummaryError(ctx *gin.Context, err error) {
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
