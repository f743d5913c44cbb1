//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"
)

// TestUserJourney walks through the main API flows: registration, accounts,
// categories, transactions with balance admission, budgets, goals, the
// dashboard and the insight endpoint.
func TestUserJourney(t *testing.T) {
	ts := newTestServer(t)
	today := time.Now().UTC().Format("2006-01-02")

	// Register
	rec, env := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "ana@example.com",
		"name":     "Ana",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var authData struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &authData)
	if authData.AccessToken == "" {
		t.Fatal("register: expected an access token")
	}

	// Login with the same credentials
	rec, env = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeData(t, env, &authData)
	token := authData.AccessToken

	// Create a checking account with an opening balance
	rec, env = ts.request(t, http.MethodPost, "/api/v1/accounts", token, map[string]any{
		"name":    "Checking",
		"type":    "checking",
		"balance": "1000.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var acct struct {
		ID      string `json:"id"`
		Balance string `json:"balance"`
	}
	decodeData(t, env, &acct)
	if acct.Balance != "1000.00" {
		t.Fatalf("create account: expected balance 1000.00, got %s", acct.Balance)
	}

	// Create an expense category
	rec, env = ts.request(t, http.MethodPost, "/api/v1/categories", token, map[string]any{
		"name": "Groceries",
		"type": "expense",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var cat struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &cat)

	// Record an income
	rec, _ = ts.request(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
		"type":       "income",
		"amount":     "500.00",
		"account_id": acct.ID,
		"date":       today,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Record a categorized expense
	rec, _ = ts.request(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
		"type":        "expense",
		"amount":      "200.00",
		"account_id":  acct.ID,
		"category_id": cat.ID,
		"date":        today,
		"description": "weekly groceries",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The account balance reflects both movements
	rec, env = ts.request(t, http.MethodGet, "/api/v1/accounts/"+acct.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get account: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeData(t, env, &acct)
	if acct.Balance != "1300.00" {
		t.Fatalf("expected balance 1300.00 after income and expense, got %s", acct.Balance)
	}

	// An expense that would overdraw the account is rejected
	rec, env = ts.request(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
		"type":       "expense",
		"amount":     "10000.00",
		"account_id": acct.ID,
		"date":       today,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("overdraw: expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	if env.Status != "error" {
		t.Fatalf("overdraw: expected error envelope, got %q", env.Status)
	}

	// Create a monthly budget for the category and check its progress
	rec, env = ts.request(t, http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category_id": cat.ID,
		"amount":      "300.00",
		"period":      "monthly",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var bud struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &bud)

	rec, env = ts.request(t, http.MethodGet, "/api/v1/budgets/"+bud.ID+"/progress", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("budget progress: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var progress struct {
		Spent      string  `json:"spent"`
		Remaining  string  `json:"remaining"`
		Percentage float64 `json:"percentage"`
		OverBudget bool    `json:"over_budget"`
	}
	decodeData(t, env, &progress)
	if progress.Spent != "200.00" {
		t.Fatalf("budget progress: expected spent 200.00, got %s", progress.Spent)
	}
	if progress.OverBudget {
		t.Fatal("budget progress: should not be over budget")
	}

	// Create a goal and fund it from the account
	rec, env = ts.request(t, http.MethodPost, "/api/v1/goals", token, map[string]any{
		"title":         "Emergency fund",
		"target_amount": "1000.00",
		"deadline":      time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02"),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var g struct {
		ID            string  `json:"id"`
		CurrentAmount string  `json:"current_amount"`
		Progress      float64 `json:"progress"`
	}
	decodeData(t, env, &g)

	rec, env = ts.request(t, http.MethodPost, "/api/v1/goals/"+g.ID+"/contribute", token, map[string]any{
		"amount":     "250.00",
		"account_id": acct.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("contribute: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeData(t, env, &g)
	if g.CurrentAmount != "250.00" {
		t.Fatalf("contribute: expected current amount 250.00, got %s", g.CurrentAmount)
	}

	// The contribution debits the source account
	rec, env = ts.request(t, http.MethodGet, "/api/v1/accounts/"+acct.ID, token, nil)
	decodeData(t, env, &acct)
	if acct.Balance != "1050.00" {
		t.Fatalf("expected balance 1050.00 after contribution, got %s", acct.Balance)
	}

	// Dashboard aggregates the state above
	rec, env = ts.request(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var dash struct {
		TotalBalance string `json:"total_balance"`
		MonthIncome  string `json:"month_income"`
	}
	decodeData(t, env, &dash)
	if dash.TotalBalance != "1050.00" {
		t.Fatalf("dashboard: expected total balance 1050.00, got %s", dash.TotalBalance)
	}

	// Without a configured provider the insight endpoint serves fallbacks
	rec, env = ts.request(t, http.MethodGet, "/api/v1/insights/generate", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("insights: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var ins struct {
		Items      []struct{} `json:"items"`
		IsFallback bool       `json:"is_fallback"`
	}
	decodeData(t, env, &ins)
	if !ins.IsFallback {
		t.Fatal("insights: expected fallback items without a provider")
	}
	if len(ins.Items) == 0 {
		t.Fatal("insights: expected at least one fallback item")
	}

	// Health never requires authentication
	rec, _ = ts.request(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
}

// TestCategoryCascadeDeletion deletes a category with several expenses and
// checks that every one of them is removed through the balance-reversing path.
func TestCategoryCascadeDeletion(t *testing.T) {
	ts := newTestServer(t)
	today := time.Now().UTC().Format("2006-01-02")

	rec, env := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "carla@example.com",
		"name":     "Carla",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", rec.Code)
	}
	var authData struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &authData)
	token := authData.AccessToken

	rec, env = ts.request(t, http.MethodPost, "/api/v1/accounts", token, map[string]any{
		"name": "Checking", "type": "checking", "balance": "1000.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account: expected 201, got %d", rec.Code)
	}
	var acct struct {
		ID      string `json:"id"`
		Balance string `json:"balance"`
	}
	decodeData(t, env, &acct)

	rec, env = ts.request(t, http.MethodPost, "/api/v1/categories", token, map[string]any{
		"name": "Dining", "type": "expense",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d", rec.Code)
	}
	var cat struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &cat)

	// A budget on the category, removed by the cascade as well.
	rec, _ = ts.request(t, http.MethodPost, "/api/v1/budgets", token, map[string]any{
		"category_id": cat.ID, "amount": "500.00", "period": "monthly",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget: expected 201, got %d", rec.Code)
	}

	for _, amount := range []string{"100.00", "50.00", "25.00"} {
		rec, _ = ts.request(t, http.MethodPost, "/api/v1/transactions", token, map[string]any{
			"type":        "expense",
			"amount":      amount,
			"account_id":  acct.ID,
			"category_id": cat.ID,
			"date":        today,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create expense %s: expected 201, got %d (%s)", amount, rec.Code, rec.Body.String())
		}
	}

	rec, env = ts.request(t, http.MethodGet, "/api/v1/accounts/"+acct.ID, token, nil)
	decodeData(t, env, &acct)
	if acct.Balance != "825.00" {
		t.Fatalf("expected balance 825.00 before the cascade, got %s", acct.Balance)
	}

	rec, env = ts.request(t, http.MethodDelete, "/api/v1/categories/"+cat.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var cascade struct {
		TransactionsDeleted int `json:"transactions_deleted"`
	}
	decodeData(t, env, &cascade)
	if cascade.TransactionsDeleted != 3 {
		t.Fatalf("expected 3 transactions deleted, got %d", cascade.TransactionsDeleted)
	}

	// Every reversal landed on the account.
	rec, env = ts.request(t, http.MethodGet, "/api/v1/accounts/"+acct.ID, token, nil)
	decodeData(t, env, &acct)
	if acct.Balance != "1000.00" {
		t.Fatalf("expected balance restored to 1000.00, got %s", acct.Balance)
	}

	rec, env = ts.request(t, http.MethodGet, "/api/v1/transactions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list transactions: expected 200, got %d", rec.Code)
	}
	var list struct {
		Total int64 `json:"total"`
	}
	decodeData(t, env, &list)
	if list.Total != 0 {
		t.Fatalf("expected no transactions after the cascade, got %d", list.Total)
	}

	rec, env = ts.request(t, http.MethodGet, "/api/v1/budgets", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list budgets: expected 200, got %d", rec.Code)
	}
	var budgets struct {
		Budgets []struct{} `json:"budgets"`
	}
	decodeData(t, env, &budgets)
	if len(budgets.Budgets) != 0 {
		t.Fatalf("expected the category's budget to be gone, got %d budgets", len(budgets.Budgets))
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	paths := []string{
		"/api/v1/accounts",
		"/api/v1/transactions",
		"/api/v1/categories",
		"/api/v1/budgets",
		"/api/v1/goals",
		"/api/v1/dashboard",
		"/api/v1/insights/generate",
	}
	for _, path := range paths {
		rec, env := ts.request(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
		if env.Status != "error" {
			t.Errorf("%s: expected error envelope, got %q", path, env.Status)
		}
	}
}

func TestLoginRateLimiting(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	}

	// The first five attempts pass the limiter and fail authentication.
	for i := 0; i < 5; i++ {
		rec, _ := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d (%s)", i+1, rec.Code, rec.Body.String())
		}
	}

	rec, env := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the limit, got %d (%s)", rec.Code, rec.Body.String())
	}
	if env.Status != "error" {
		t.Fatalf("expected error envelope, got %q", env.Status)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	ts := newTestServer(t)

	register := func(email string) string {
		rec, env := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":    email,
			"name":     "User",
			"password": "s3cret-pass",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("register %s: expected 201, got %d", email, rec.Code)
		}
		var data struct {
			AccessToken string `json:"access_token"`
		}
		decodeData(t, env, &data)
		return data.AccessToken
	}

	aliceToken := register("alice@example.com")
	bobToken := register("bob@example.com")

	rec, env := ts.request(t, http.MethodPost, "/api/v1/accounts", aliceToken, map[string]any{
		"name": "Private", "type": "savings", "balance": "50.00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create account: expected 201, got %d", rec.Code)
	}
	var acct struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &acct)

	// Foreign resources read as absent.
	rec, _ = ts.request(t, http.MethodGet, "/api/v1/accounts/"+acct.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign account, got %d", rec.Code)
	}
}
