package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func registerAuthSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUserWithPassword)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, iAmLoggedInAsWithPassword)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
}

func registerBudgetSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I create a category "([^"]*)" in group "([^"]*)"$`, iCreateACategoryInGroup)
	ctx.Step(`^I set the expense for month (\d+) of that category to "([^"]*)"$`, iSetTheExpenseForMonth)
	ctx.Step(`^I set the income for month (\d+) to "([^"]*)"$`, iSetTheIncomeForMonth)
}

func registerPremiumSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^an activation code "([^"]*)" exists$`, anActivationCodeExists)
	ctx.Step(`^an expired activation code "([^"]*)" exists$`, anExpiredActivationCodeExists)
	ctx.Step(`^a used activation code "([^"]*)" exists$`, aUsedActivationCodeExists)
	ctx.Step(`^the payment provider reports payment "([^"]*)" as "([^"]*)"$`, thePaymentProviderReports)
	ctx.Step(`^the payment provider is down$`, thePaymentProviderIsDown)
	ctx.Step(`^I have a premium account$`, iHaveAPremiumAccount)
}

func aRegisteredUserWithPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": password,
	})
	if err := tc.doRequest("POST", "/api/v1/auth/register", bytes.NewReader(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != 201 {
		return fmt.Errorf("registration failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func iAmLoggedInAsWithPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err := tc.doRequest("POST", "/api/v1/auth/login", bytes.NewReader(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != 200 {
		return fmt.Errorf("login failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	tc.accessToken = body.AccessToken
	tc.refreshToken = body.RefreshToken
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	tc.refreshToken = ""
	return nil
}

func iCreateACategoryInGroup(ctx context.Context, name, group string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	payload, _ := json.Marshal(map[string]string{"name": name, "type": group})
	if err := tc.doRequest("POST", "/api/v1/budget/categories", bytes.NewReader(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != 201 {
		return fmt.Errorf("category creation failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse category response: %w", err)
	}
	tc.lastCategoryID = body.ID
	return nil
}

func iSetTheExpenseForMonth(ctx context.Context, monthIndex int, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.lastCategoryID == "" {
		return fmt.Errorf("no category was created in this scenario")
	}

	payload, _ := json.Marshal(map[string]any{
		"month_index": monthIndex,
		"category_id": tc.lastCategoryID,
		"value":       value,
	})
	return tc.doRequest("PUT", "/api/v1/budget/cells", bytes.NewReader(payload))
}

func iSetTheIncomeForMonth(ctx context.Context, monthIndex int, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	payload, _ := json.Marshal(map[string]any{
		"month_index": monthIndex,
		"value":       value,
	})
	return tc.doRequest("PUT", "/api/v1/budget/cells", bytes.NewReader(payload))
}

func anActivationCodeExists(ctx context.Context, code string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.codeRepo.Create(ctx, entity.NewActivationCode(code, "suite", nil))
}

func anExpiredActivationCodeExists(ctx context.Context, code string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expiry := tc.clock.Now().Add(-24 * time.Hour)
	return tc.codeRepo.Create(ctx, entity.NewActivationCode(code, "suite", &expiry))
}

func aUsedActivationCodeExists(ctx context.Context, code string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	record := entity.NewActivationCode(code, "suite", nil)
	record.Used = true
	record.CurrentUses = 1
	return tc.codeRepo.Create(ctx, record)
}

func thePaymentProviderReports(ctx context.Context, paymentID, status string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.payment.SetStatus(paymentID, status)
	return nil
}

func thePaymentProviderIsDown(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.payment.SetFailing(true)
	return nil
}

func iHaveAPremiumAccount(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.accessToken == "" {
		return fmt.Errorf("not logged in")
	}

	payload, _ := json.Marshal(map[string]string{"code": testSpecialCode})
	if err := tc.doRequest("POST", "/api/v1/premium/activate", bytes.NewReader(payload)); err != nil {
		return err
	}
	if tc.response.StatusCode != 200 {
		return fmt.Errorf("premium activation failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}
