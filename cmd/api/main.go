// Package main is the entry point for the Budget Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/saver"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/insight"
	"github.com/budget-tracker/backend/internal/application/usecase/premium"
	"github.com/budget-tracker/backend/internal/application/usecase/preset"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/cache"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Budget Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.BudgetDocumentModel{},
		&model.ActivationCodeModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Summary cache is optional: without Redis every read recomputes.
	var summaryCache adapter.SummaryCache
	if opts, err := redis.ParseURL(cfg.Redis.URL); err != nil {
		slog.Warn("Invalid Redis URL, running without summary cache", "error", err)
	} else {
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		redisClient := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis unreachable, running without summary cache", "error", err)
		} else {
			summaryCache = cache.NewSummaryCache(redisClient, cfg.Redis.SummaryTTL)
			defer redisClient.Close()
		}
		cancel()
	}

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	tokenRepo := persistence.NewTokenRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	codeRepo := persistence.NewActivationCodeRepository(database.DB())

	// Adapters/services
	clock := adapter.NewRealClock()
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	paymentGateway := adapters.NewPaymentClient(cfg.Premium.PaymentBaseURL, cfg.Premium.PaymentAPIToken, cfg.Premium.PaymentTimeout)
	insightService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("Email sending disabled, RESEND_API_KEY not set")
	}

	// Budget store with debounced persistence
	budgetStore := saver.New(budgetRepo, clock, cfg.Saver.QuietPeriod)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Budget use cases
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetStore)
	createCategoryUseCase := budget.NewCreateCategoryUseCase(budgetStore, userRepo, summaryCache)
	updateCategoryUseCase := budget.NewUpdateCategoryUseCase(budgetStore, summaryCache)
	deleteCategoryUseCase := budget.NewDeleteCategoryUseCase(budgetStore, summaryCache)
	setCellValueUseCase := budget.NewSetCellValueUseCase(budgetStore, summaryCache)
	clearMonthUseCase := budget.NewClearMonthUseCase(budgetStore, userRepo, summaryCache)
	resetDocumentUseCase := budget.NewResetDocumentUseCase(budgetStore, summaryCache)

	// Preset use cases
	addPresetUseCase := preset.NewAddPresetUseCase(budgetStore)
	removePresetUseCase := preset.NewRemovePresetUseCase(budgetStore)
	toggleGroupTotalUseCase := preset.NewToggleGroupTotalUseCase(budgetStore, summaryCache)

	// Summary and insight use cases
	getSummaryUseCase := summary.NewGetSummaryUseCase(budgetStore, summaryCache)
	getMonthBreakdownUseCase := summary.NewGetMonthBreakdownUseCase(budgetStore)
	getInsightUseCase := insight.NewGetInsightUseCase(budgetStore, userRepo, insightService)

	// Premium use cases
	redeemCodeUseCase := premium.NewRedeemCodeUseCase(userRepo, codeRepo, paymentGateway, emailSender, clock, cfg.Premium.SpecialCodes)
	confirmPaymentUseCase := premium.NewConfirmPaymentUseCase(userRepo, paymentGateway, emailSender, clock)
	getStatusUseCase := premium.NewGetStatusUseCase(userRepo)
	generateCodeUseCase := premium.NewGenerateCodeUseCase(codeRepo, clock)

	// Controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	budgetController := controller.NewBudgetController(
		getBudgetUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		setCellValueUseCase,
		clearMonthUseCase,
		resetDocumentUseCase,
	)
	presetController := controller.NewPresetController(addPresetUseCase, removePresetUseCase, toggleGroupTotalUseCase)
	summaryController := controller.NewSummaryController(getSummaryUseCase, getMonthBreakdownUseCase, getInsightUseCase)
	premiumController := controller.NewPremiumController(redeemCodeUseCase, confirmPaymentUseCase, getStatusUseCase, generateCodeUseCase)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter()
	redeemRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Router and HTTP server
	r := router.NewRouter(
		healthController,
		authController,
		budgetController,
		presetController,
		summaryController,
		premiumController,
		loginRateLimiter,
		redeemRateLimiter,
		authMiddleware,
		cfg.Premium.AdminKey,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Flush any debounced budget saves before the process exits.
	if err := budgetStore.Close(ctx); err != nil {
		slog.Error("Failed to flush pending budget saves", "error", err)
	}

	slog.Info("Server exited properly")
}
