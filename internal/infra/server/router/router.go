// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	budgetController  *controller.BudgetController
	presetController  *controller.PresetController
	summaryController *controller.SummaryController
	premiumController *controller.PremiumController
	loginRateLimiter  *middleware.RateLimiter
	redeemRateLimiter *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
	adminKey          string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	budgetController *controller.BudgetController,
	presetController *controller.PresetController,
	summaryController *controller.SummaryController,
	premiumController *controller.PremiumController,
	loginRateLimiter *middleware.RateLimiter,
	redeemRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	adminKey string,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		budgetController:  budgetController,
		presetController:  presetController,
		summaryController: summaryController,
		premiumController: premiumController,
		loginRateLimiter:  loginRateLimiter,
		redeemRateLimiter: redeemRateLimiter,
		authMiddleware:    authMiddleware,
		adminKey:          adminKey,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Budget document routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budget := v1.Group("/budget")
			budget.Use(r.authMiddleware.Authenticate())
			{
				budget.GET("", r.budgetController.GetBudget)
				budget.DELETE("", r.budgetController.ResetDocument)
				budget.POST("/categories", r.budgetController.CreateCategory)
				budget.PUT("/categories/:id", r.budgetController.UpdateCategory)
				budget.DELETE("/categories/:id", r.budgetController.DeleteCategory)
				budget.PUT("/cells", r.budgetController.SetCellValue)
				budget.DELETE("/months/:index", r.budgetController.ClearMonth)

				if r.presetController != nil {
					budget.POST("/presets", r.presetController.AddPreset)
					budget.DELETE("/presets/:label", r.presetController.RemovePreset)
					budget.PUT("/presets/totals", r.presetController.ToggleGroupTotal)
				}

				if r.summaryController != nil {
					budget.GET("/summary", r.summaryController.GetSummary)
					budget.GET("/summary/months/:index", r.summaryController.GetMonthBreakdown)
					budget.GET("/insights", r.summaryController.GetInsight)
				}
			}
		}

		// Premium routes (require authentication)
		if r.premiumController != nil && r.authMiddleware != nil {
			premium := v1.Group("/premium")
			premium.Use(r.authMiddleware.Authenticate())
			{
				if r.redeemRateLimiter != nil {
					premium.POST("/activate", r.redeemRateLimiter.Middleware(), r.premiumController.RedeemCode)
				} else {
					premium.POST("/activate", r.premiumController.RedeemCode)
				}
				premium.POST("/payment/confirm", r.premiumController.ConfirmPayment)
				premium.GET("/status", r.premiumController.GetStatus)
				premium.POST("/codes", middleware.RequireAdminKey(r.adminKey), r.premiumController.GenerateCode)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
