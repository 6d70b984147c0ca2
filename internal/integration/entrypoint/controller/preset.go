package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/preset"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// PresetController handles group-label registry endpoints.
type PresetController struct {
	addPresetUseCase        *preset.AddPresetUseCase
	removePresetUseCase     *preset.RemovePresetUseCase
	toggleGroupTotalUseCase *preset.ToggleGroupTotalUseCase
}

// NewPresetController creates a new preset controller instance.
func NewPresetController(
	addPresetUseCase *preset.AddPresetUseCase,
	removePresetUseCase *preset.RemovePresetUseCase,
	toggleGroupTotalUseCase *preset.ToggleGroupTotalUseCase,
) *PresetController {
	return &PresetController{
		addPresetUseCase:        addPresetUseCase,
		removePresetUseCase:     removePresetUseCase,
		toggleGroupTotalUseCase: toggleGroupTotalUseCase,
	}
}

// AddPreset handles POST /budget/presets requests.
func (c *PresetController) AddPreset(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.AddPresetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.addPresetUseCase.Execute(ctx.Request.Context(), preset.AddPresetInput{
		UserID: userID,
		Label:  req.Label,
	})
	if err != nil {
		c.handlePresetError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Added {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.PresetsResponse{
		Presets: output.Presets,
		Added:   &output.Added,
	})
}

// RemovePreset handles DELETE /budget/presets/:label requests.
func (c *PresetController) RemovePreset(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.removePresetUseCase.Execute(ctx.Request.Context(), preset.RemovePresetInput{
		UserID: userID,
		Label:  ctx.Param("label"),
	})
	if err != nil {
		c.handlePresetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PresetsResponse{Presets: output.Presets})
}

// ToggleGroupTotal handles PUT /budget/presets/totals requests.
func (c *PresetController) ToggleGroupTotal(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.ToggleGroupTotalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.toggleGroupTotalUseCase.Execute(ctx.Request.Context(), preset.ToggleGroupTotalInput{
		UserID: userID,
		Label:  req.Label,
		Show:   *req.Show,
	})
	if err != nil {
		c.handlePresetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ShowTotalsResponse{ShowTotals: output.ShowTotals})
}

// handlePresetError maps preset errors to HTTP responses.
func (c *PresetController) handlePresetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(getStatusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
