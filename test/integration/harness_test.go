//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finsight/backend/internal/application/usecase/account"
	"github.com/finsight/backend/internal/application/usecase/auth"
	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/application/usecase/category"
	"github.com/finsight/backend/internal/application/usecase/dashboard"
	"github.com/finsight/backend/internal/application/usecase/goal"
	"github.com/finsight/backend/internal/application/usecase/insight"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
	"github.com/finsight/backend/internal/integration/persistence/model"
)

// testServer wires the full HTTP stack against an in-memory database and a
// miniredis instance.
type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.GoalModel{},
		&model.AIInsightModel{},
		&model.EmailQueueModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	userRepo := persistence.NewUserRepository(gormDB)
	accountRepo := persistence.NewAccountRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	insightRepo := persistence.NewInsightRepository(gormDB)
	txManager := persistence.NewTransactionManager(gormDB)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("integration-test-secret", time.Hour)
	// No API key: the insight endpoint serves deterministic fallback items.
	insightGenerator := adapters.NewGeminiInsightService("", "")

	authority := ledger.NewBalanceAuthority(accountRepo)
	calculator := budget.NewProgressCalculator(transactionRepo)

	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo, authority, txManager)

	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
	)
	accountController := controller.NewAccountController(
		account.NewCreateAccountUseCase(accountRepo),
		account.NewListAccountsUseCase(accountRepo),
		account.NewGetAccountUseCase(accountRepo),
		account.NewUpdateAccountUseCase(accountRepo),
		account.NewDeleteAccountUseCase(accountRepo, transactionRepo),
	)
	transactionController := controller.NewTransactionController(
		transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, authority, txManager),
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewGetTransactionUseCase(transactionRepo, categoryRepo),
		transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo),
		deleteTransactionUseCase,
		transaction.NewTransactionStatsUseCase(transactionRepo),
	)
	categoryController := controller.NewCategoryController(
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, budgetRepo, deleteTransactionUseCase, txManager),
	)
	budgetController := controller.NewBudgetController(
		budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo),
		budget.NewListBudgetsUseCase(budgetRepo, calculator),
		budget.NewGetBudgetProgressUseCase(budgetRepo, categoryRepo, calculator),
		budget.NewGetBudgetAlertsUseCase(budgetRepo, calculator),
		budget.NewUpdateBudgetUseCase(budgetRepo),
		budget.NewDeleteBudgetUseCase(budgetRepo),
	)
	goalController := controller.NewGoalController(
		goal.NewCreateGoalUseCase(goalRepo),
		goal.NewListGoalsUseCase(goalRepo),
		goal.NewGetGoalUseCase(goalRepo),
		goal.NewUpdateGoalUseCase(goalRepo),
		goal.NewDeleteGoalUseCase(goalRepo),
		goal.NewContributeGoalUseCase(goalRepo, accountRepo, authority, txManager),
	)
	dashboardController := controller.NewDashboardController(
		dashboard.NewGetDashboardUseCase(accountRepo, transactionRepo, budgetRepo, goalRepo, calculator),
	)
	insightController := controller.NewInsightController(
		insight.NewGenerateInsightsUseCase(insightRepo, transactionRepo, budgetRepo, goalRepo, insightGenerator, calculator, time.Second),
	)
	healthController := controller.NewHealthController(func() bool { return true })

	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		transactionController,
		categoryController,
		budgetController,
		goalController,
		dashboardController,
		insightController,
		middleware.NewRateLimiter(redisClient, "test:ratelimit:login"),
		middleware.NewAuthMiddleware(tokenService),
	)

	return &testServer{
		engine: r.Setup("test"),
		db:     gormDB,
	}
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

// request performs an HTTP request against the test server and returns the
// recorder together with the decoded envelope (when the body carries one).
func (ts *testServer) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	ts.engine.ServeHTTP(recorder, req)

	var env envelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &env)

	return recorder, env
}

// decodeData unmarshals the envelope data into out.
func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}
