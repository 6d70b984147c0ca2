// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/saver"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/insight"
	"github.com/budget-tracker/backend/internal/application/usecase/premium"
	"github.com/budget-tracker/backend/internal/application/usecase/preset"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/cache"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
const testAdminKey = "test-admin-key"
const testSpecialCode = "BUDGETVIP"

// TestContext holds the per-scenario state.
type TestContext struct {
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	requestHeaders map[string]string
	accessToken    string
	refreshToken   string
	lastCategoryID string

	db       *mock.Db
	payment  *mock.PaymentProvider
	codeRepo adapter.ActivationCodeRepository
	clock    adapter.Clock
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disables the login/redeem rate limiters.
		_ = os.Setenv("ENV", "test")
	})
}

var paymentProvider *mock.PaymentProvider

// InitializeScenario wires the full application against in-memory backends
// and registers every step definition.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		db := mock.NewDb([]any{
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.BudgetDocumentModel{},
			&model.ActivationCodeModel{},
		})
		if err := db.Reset(); err != nil {
			return ctx, err
		}

		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		if paymentProvider == nil {
			paymentProvider = mock.NewPaymentProvider()
		}
		paymentProvider.Reset()

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			db:             db,
			payment:        paymentProvider,
			clock:          adapter.NewRealClock(),
		}
		tc.server = httptest.NewServer(buildApp(tc, db, redisClient))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerAuthSteps(ctx)
	registerBudgetSteps(ctx)
	registerPremiumSteps(ctx)
}

// buildApp assembles the application the way main does, with the test
// backends swapped in and write coalescing disabled.
func buildApp(tc *TestContext, db *mock.Db, redisClient *redis.Client) http.Handler {
	conn := db.DbConn

	userRepo := persistence.NewUserRepository(conn)
	tokenRepo := persistence.NewTokenRepository(conn)
	budgetRepo := persistence.NewBudgetRepository(conn)
	codeRepo := persistence.NewActivationCodeRepository(conn)
	tc.codeRepo = codeRepo

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
	paymentGateway := adapters.NewPaymentClient(tc.payment.URL(), "test-token", 5*time.Second)
	insightService := adapters.NewGeminiService("")
	summaryCache := cache.NewSummaryCache(redisClient, time.Minute)

	// Zero quiet period: every edit writes through, so assertions can read
	// storage right after the request returns.
	budgetStore := saver.New(budgetRepo, tc.clock, 0)

	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetStore)
	createCategoryUseCase := budget.NewCreateCategoryUseCase(budgetStore, userRepo, summaryCache)
	updateCategoryUseCase := budget.NewUpdateCategoryUseCase(budgetStore, summaryCache)
	deleteCategoryUseCase := budget.NewDeleteCategoryUseCase(budgetStore, summaryCache)
	setCellValueUseCase := budget.NewSetCellValueUseCase(budgetStore, summaryCache)
	clearMonthUseCase := budget.NewClearMonthUseCase(budgetStore, userRepo, summaryCache)
	resetDocumentUseCase := budget.NewResetDocumentUseCase(budgetStore, summaryCache)

	addPresetUseCase := preset.NewAddPresetUseCase(budgetStore)
	removePresetUseCase := preset.NewRemovePresetUseCase(budgetStore)
	toggleGroupTotalUseCase := preset.NewToggleGroupTotalUseCase(budgetStore, summaryCache)

	getSummaryUseCase := summary.NewGetSummaryUseCase(budgetStore, summaryCache)
	getMonthBreakdownUseCase := summary.NewGetMonthBreakdownUseCase(budgetStore)
	getInsightUseCase := insight.NewGetInsightUseCase(budgetStore, userRepo, insightService)

	redeemCodeUseCase := premium.NewRedeemCodeUseCase(userRepo, codeRepo, paymentGateway, nil, tc.clock, []string{testSpecialCode})
	confirmPaymentUseCase := premium.NewConfirmPaymentUseCase(userRepo, paymentGateway, nil, tc.clock)
	getStatusUseCase := premium.NewGetStatusUseCase(userRepo)
	generateCodeUseCase := premium.NewGenerateCodeUseCase(codeRepo, tc.clock)

	healthController := controller.NewHealthController(func() bool { return true })
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

	r := router.NewRouter(
		healthController,
		authController,
		budgetController,
		presetController,
		summaryController,
		premiumController,
		middleware.NewRateLimiter(),
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tokenService),
		testAdminKey,
	)
	return r.Setup("test")
}

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, bytes.NewBufferString(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

// lookupField resolves a dot path like "user.email" or "months.0.total"
// against the decoded response body.
func (tc *TestContext) lookupField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response. Body: %s", path, string(tc.responseBody))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("invalid array index %q in path %q", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q at %q", path, part)
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.lookupField(field)
	return err
}
