//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/infra/dependency"
	"github.com/pocketledger/backend/test/integration/mock"
)

// testConfig returns a configuration suitable for the in-process test server.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        0,
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:             "integration-test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Stripe: config.StripeConfig{
			SecretKey:       "sk_test_placeholder",
			DefaultCurrency: "usd",
		},
		Alerts: config.AlertsConfig{Enabled: false},
	}
}

// TestContext carries per-scenario state: the running server, the
// authenticated user's token and the last HTTP exchange.
type TestContext struct {
	injector *dependency.Injector
	server   *httptest.Server

	accessToken       string
	categoryIDs       map[string]string
	lastTransactionID string
	lastStatus        int
	lastBody          []byte
}

// InitializeScenario registers hooks and step definitions for a scenario.
func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &TestContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}
		tc.injector = dependency.NewInjector(testConfig(), redisClient)
		tc.server = httptest.NewServer(tc.injector.Router.Setup("test"))
		tc.accessToken = ""
		tc.categoryIDs = map[string]string{}
		tc.lastTransactionID = ""
		tc.lastStatus = 0
		tc.lastBody = nil
		return ctx, nil
	})

	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.injector.Sessions.Shutdown()
		tc.server.Close()
		return ctx, nil
	})

	sc.Step(`^a signed-in user$`, tc.aSignedInUser)
	sc.Step(`^a monthly budget of "([^"]*)" for category "([^"]*)"$`, tc.createMonthlyBudget)
	sc.Step(`^they record an income of "([^"]*)" described as "([^"]*)"$`, tc.recordIncome)
	sc.Step(`^they record an expense of "([^"]*)" in category "([^"]*)" described as "([^"]*)"$`, tc.recordExpense)
	sc.Step(`^they record an expense of "([^"]*)" in an unknown category$`, tc.recordExpenseUnknownCategory)
	sc.Step(`^they delete that transaction$`, tc.deleteLastTransaction)
	sc.Step(`^they delete the category "([^"]*)"$`, tc.deleteCategory)
	sc.Step(`^they create a monthly budget of "([^"]*)" for category "([^"]*)"$`, tc.createMonthlyBudget)
	sc.Step(`^the summary shows total income "([^"]*)", total expenses "([^"]*)" and balance "([^"]*)"$`, tc.summaryShows)
	sc.Step(`^the budget for category "([^"]*)" shows spent "([^"]*)" and progress (\d+(?:\.\d+)?)$`, tc.budgetShows)
	sc.Step(`^the transaction list is empty$`, tc.transactionListIsEmpty)
	sc.Step(`^the budget list is empty$`, tc.budgetListIsEmpty)
	sc.Step(`^the request is rejected with status (\d+) and code "([^"]*)"$`, tc.requestRejected)
}

func (tc *TestContext) doRequest(method, path string, body any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) decodeLast(target any) error {
	if err := json.Unmarshal(tc.lastBody, target); err != nil {
		return fmt.Errorf("decoding response %q: %w", tc.lastBody, err)
	}
	return nil
}

// eventually retries an assertion until it passes or the deadline expires.
// The store mirrors are updated by subscription callbacks, so reads that
// depend on a recalculation may lag the mutation that triggered it.
func eventually(check func() error) error {
	deadline := time.Now().Add(3 * time.Second)
	var err error
	for {
		if err = check(); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func (tc *TestContext) aSignedInUser() error {
	email := fmt.Sprintf("user-%s@pocketledger.test", uuid.NewString())
	err := tc.doRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": "s3cret-pass",
	})
	if err != nil {
		return err
	}
	if tc.lastStatus != http.StatusCreated {
		return fmt.Errorf("register returned %d: %s", tc.lastStatus, tc.lastBody)
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := tc.decodeLast(&auth); err != nil {
		return err
	}
	tc.accessToken = auth.AccessToken

	// The first authenticated request opens the sync session and seeds the
	// default categories. Poll until the seeded set is visible.
	return eventually(func() error {
		if err := tc.doRequest(http.MethodGet, "/api/v1/categories", nil); err != nil {
			return err
		}
		if tc.lastStatus != http.StatusOK {
			return fmt.Errorf("list categories returned %d: %s", tc.lastStatus, tc.lastBody)
		}
		var list struct {
			Categories []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"categories"`
		}
		if err := tc.decodeLast(&list); err != nil {
			return err
		}
		if len(list.Categories) == 0 {
			return fmt.Errorf("default categories not seeded yet")
		}
		tc.categoryIDs = map[string]string{}
		for _, category := range list.Categories {
			tc.categoryIDs[category.Name] = category.ID
		}
		return nil
	})
}

func (tc *TestContext) categoryID(name string) (string, error) {
	id, ok := tc.categoryIDs[name]
	if !ok {
		return "", fmt.Errorf("no category named %q", name)
	}
	return id, nil
}

func (tc *TestContext) recordMovement(amount, movementType, categoryID, description string) error {
	if err := tc.doRequest(http.MethodPost, "/api/v1/transactions", map[string]any{
		"date":        time.Now().UTC().Format(time.RFC3339),
		"description": description,
		"amount":      amount,
		"type":        movementType,
		"category_id": categoryID,
	}); err != nil {
		return err
	}
	if tc.lastStatus != http.StatusCreated {
		return nil // leave the failed exchange for the rejection steps
	}

	var created struct {
		Transaction struct {
			ID string `json:"id"`
		} `json:"transaction"`
	}
	if err := tc.decodeLast(&created); err != nil {
		return err
	}
	tc.lastTransactionID = created.Transaction.ID
	return nil
}

func (tc *TestContext) recordIncome(amount, description string) error {
	id, err := tc.categoryID("Salary")
	if err != nil {
		return err
	}
	return tc.recordMovement(amount, "income", id, description)
}

func (tc *TestContext) recordExpense(amount, categoryName, description string) error {
	id, err := tc.categoryID(categoryName)
	if err != nil {
		return err
	}
	return tc.recordMovement(amount, "expense", id, description)
}

func (tc *TestContext) recordExpenseUnknownCategory(amount string) error {
	return tc.recordMovement(amount, "expense", uuid.NewString(), "phantom purchase")
}

func (tc *TestContext) createMonthlyBudget(amount, categoryName string) error {
	id, err := tc.categoryID(categoryName)
	if err != nil {
		return err
	}
	return tc.doRequest(http.MethodPost, "/api/v1/budgets", map[string]any{
		"category_id": id,
		"amount":      amount,
		"period":      "monthly",
	})
}

func (tc *TestContext) deleteLastTransaction() error {
	if tc.lastTransactionID == "" {
		return fmt.Errorf("no transaction recorded in this scenario")
	}
	if err := tc.doRequest(http.MethodDelete, "/api/v1/transactions/"+tc.lastTransactionID, nil); err != nil {
		return err
	}
	if tc.lastStatus != http.StatusOK {
		return fmt.Errorf("delete transaction returned %d: %s", tc.lastStatus, tc.lastBody)
	}
	return nil
}

func (tc *TestContext) deleteCategory(name string) error {
	id, err := tc.categoryID(name)
	if err != nil {
		return err
	}
	if err := tc.doRequest(http.MethodDelete, "/api/v1/categories/"+id, nil); err != nil {
		return err
	}
	if tc.lastStatus != http.StatusOK {
		return fmt.Errorf("delete category returned %d: %s", tc.lastStatus, tc.lastBody)
	}
	return nil
}

func (tc *TestContext) summaryShows(income, expenses, balance string) error {
	wantIncome, err := decimal.NewFromString(income)
	if err != nil {
		return err
	}
	wantExpenses, err := decimal.NewFromString(expenses)
	if err != nil {
		return err
	}
	wantBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return err
	}

	return eventually(func() error {
		if err := tc.doRequest(http.MethodGet, "/api/v1/summary", nil); err != nil {
			return err
		}
		if tc.lastStatus != http.StatusOK {
			return fmt.Errorf("get summary returned %d: %s", tc.lastStatus, tc.lastBody)
		}
		var summary struct {
			TotalIncome    decimal.Decimal `json:"total_income"`
			TotalExpenses  decimal.Decimal `json:"total_expenses"`
			CurrentBalance decimal.Decimal `json:"current_balance"`
		}
		if err := tc.decodeLast(&summary); err != nil {
			return err
		}
		if !summary.TotalIncome.Equal(wantIncome) ||
			!summary.TotalExpenses.Equal(wantExpenses) ||
			!summary.CurrentBalance.Equal(wantBalance) {
			return fmt.Errorf("summary is income=%s expenses=%s balance=%s, want income=%s expenses=%s balance=%s",
				summary.TotalIncome, summary.TotalExpenses, summary.CurrentBalance,
				wantIncome, wantExpenses, wantBalance)
		}
		return nil
	})
}

func (tc *TestContext) budgetShows(categoryName, spent string, progress float64) error {
	wantSpent, err := decimal.NewFromString(spent)
	if err != nil {
		return err
	}

	return eventually(func() error {
		if err := tc.doRequest(http.MethodGet, "/api/v1/budgets", nil); err != nil {
			return err
		}
		if tc.lastStatus != http.StatusOK {
			return fmt.Errorf("list budgets returned %d: %s", tc.lastStatus, tc.lastBody)
		}
		var list struct {
			BudgetGoals []struct {
				CategoryName    string          `json:"category_name"`
				SpentAmount     decimal.Decimal `json:"spent_amount"`
				ProgressPercent float64         `json:"progress_percent"`
			} `json:"budget_goals"`
		}
		if err := tc.decodeLast(&list); err != nil {
			return err
		}
		for _, goal := range list.BudgetGoals {
			if goal.CategoryName != categoryName {
				continue
			}
			if !goal.SpentAmount.Equal(wantSpent) {
				return fmt.Errorf("budget for %q spent %s, want %s", categoryName, goal.SpentAmount, wantSpent)
			}
			if goal.ProgressPercent != progress {
				return fmt.Errorf("budget for %q at %.2f%%, want %.2f%%", categoryName, goal.ProgressPercent, progress)
			}
			return nil
		}
		return fmt.Errorf("no budget goal for category %q", categoryName)
	})
}

func (tc *TestContext) transactionListIsEmpty() error {
	return eventually(func() error {
		if err := tc.doRequest(http.MethodGet, "/api/v1/transactions", nil); err != nil {
			return err
		}
		var list struct {
			Transactions []json.RawMessage `json:"transactions"`
		}
		if err := tc.decodeLast(&list); err != nil {
			return err
		}
		if len(list.Transactions) != 0 {
			return fmt.Errorf("transaction list still has %d entries", len(list.Transactions))
		}
		return nil
	})
}

func (tc *TestContext) budgetListIsEmpty() error {
	return eventually(func() error {
		if err := tc.doRequest(http.MethodGet, "/api/v1/budgets", nil); err != nil {
			return err
		}
		var list struct {
			BudgetGoals []json.RawMessage `json:"budget_goals"`
		}
		if err := tc.decodeLast(&list); err != nil {
			return err
		}
		if len(list.BudgetGoals) != 0 {
			return fmt.Errorf("budget list still has %d entries", len(list.BudgetGoals))
		}
		return nil
	})
}

func (tc *TestContext) requestRejected(status int, code string) error {
	if tc.lastStatus != status {
		return fmt.Errorf("last request returned %d, want %d: %s", tc.lastStatus, status, tc.lastBody)
	}
	var errResp struct {
		Code string `json:"code"`
	}
	if err := tc.decodeLast(&errResp); err != nil {
		return err
	}
	if errResp.Code != code {
		return fmt.Errorf("error code is %q, want %q", errResp.Code, code)
	}
	return nil
}
