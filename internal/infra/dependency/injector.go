// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/usecase/account"
	"github.com/finsight/backend/internal/application/usecase/auth"
	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/application/usecase/category"
	"github.com/finsight/backend/internal/application/usecase/dashboard"
	"github.com/finsight/backend/internal/application/usecase/goal"
	"github.com/finsight/backend/internal/application/usecase/insight"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/infra/db"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/email"
	"github.com/finsight/backend/internal/integration/email/templates"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	Router *router.Router

	// Background jobs started by main.
	EmailWorker  *email.Worker
	NotifyAlerts *budget.NotifyAlertsUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client) (*Injector, error) {
	gormDB := database.DB()

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	accountRepo := persistence.NewAccountRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	insightRepo := persistence.NewInsightRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)
	txManager := persistence.NewTransactionManager(gormDB)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	insightGenerator := adapters.NewGeminiInsightService(cfg.AI.GeminiAPIKey, cfg.AI.Model)

	// Shared application services
	authority := ledger.NewBalanceAuthority(accountRepo)
	calculator := budget.NewProgressCalculator(transactionRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, transactionRepo)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, authority, txManager)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo, categoryRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, accountRepo, authority, txManager)
	transactionStatsUseCase := transaction.NewTransactionStatsUseCase(transactionRepo)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, budgetRepo, deleteTransactionUseCase, txManager)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, calculator)
	budgetProgressUseCase := budget.NewGetBudgetProgressUseCase(budgetRepo, categoryRepo, calculator)
	budgetAlertsUseCase := budget.NewGetBudgetAlertsUseCase(budgetRepo, calculator)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	notifyAlertsUseCase := budget.NewNotifyAlertsUseCase(budgetRepo, userRepo, emailQueueRepo, calculator)

	// Create goal use cases
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	contributeGoalUseCase := goal.NewContributeGoalUseCase(goalRepo, accountRepo, authority, txManager)

	// Dashboard and insights
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(accountRepo, transactionRepo, budgetRepo, goalRepo, calculator)
	generateInsightsUseCase := insight.NewGenerateInsightsUseCase(
		insightRepo,
		transactionRepo,
		budgetRepo,
		goalRepo,
		insightGenerator,
		calculator,
		cfg.AI.RequestTimeout,
	)

	// Email delivery
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email templates: %w", err)
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		getAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		transactionStatsUseCase,
	)
	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		budgetProgressUseCase,
		budgetAlertsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	goalController := controller.NewGoalController(
		createGoalUseCase,
		listGoalsUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		contributeGoalUseCase,
	)
	dashboardController := controller.NewDashboardController(getDashboardUseCase)
	insightController := controller.NewInsightController(generateInsightsUseCase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	loginRateLimiter := middleware.NewRateLimiter(redisClient, "ratelimit:login")

	appRouter := router.NewRouter(
		healthController,
		authController,
		accountController,
		transactionController,
		categoryController,
		budgetController,
		goalController,
		dashboardController,
		insightController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		Router:       appRouter,
		EmailWorker:  emailWorker,
		NotifyAlerts: notifyAlertsUseCase,
	}, nil
}
