package insight

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/domain/entity"
)

const (
	// defaultContextDays is the lookback window the financial context is
	// built from when the caller does not choose one.
	defaultContextDays = 30
	// maxContextDays caps the lookback window.
	maxContextDays = 365
	// contextTopCategories caps the category breakdown handed to the generator.
	contextTopCategories = 3
	// defaultGeneratorTimeout bounds one external generation call.
	defaultGeneratorTimeout = 15 * time.Second
)

// GenerateInsightsInput represents the input for insight generation.
type GenerateInsightsInput struct {
	UserID  uuid.UUID
	Days    int  // Lookback window in days; 0 means the default
	Refresh bool // Skip the cache and force a new generation
}

// GenerateInsightsOutput represents the output of insight generation.
type GenerateInsightsOutput struct {
	Insight *entity.AIInsight
	Cached  bool
}

// GenerateInsightsUseCase serves financial insights. A valid cached document
// is returned as-is; otherwise a fresh one is generated from a bounded
// lookback window of activity. Generator failure is never surfaced: the deterministic
// fallback substitutes, cached with a shorter validity so the generator gets
// retried sooner.
type GenerateInsightsUseCase struct {
	insightRepo      adapter.InsightRepository
	transactionRepo  adapter.TransactionRepository
	budgetRepo       adapter.BudgetRepository
	goalRepo         adapter.GoalRepository
	generator        adapter.InsightGenerator
	calculator       *budget.ProgressCalculator
	generatorTimeout time.Duration
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
// A non-positive timeout falls back to the default.
func NewGenerateInsightsUseCase(
	insightRepo adapter.InsightRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
	generator adapter.InsightGenerator,
	calculator *budget.ProgressCalculator,
	generatorTimeout time.Duration,
) *GenerateInsightsUseCase {
	if generatorTimeout <= 0 {
		generatorTimeout = defaultGeneratorTimeout
	}
	return &GenerateInsightsUseCase{
		insightRepo:      insightRepo,
		transactionRepo:  transactionRepo,
		budgetRepo:       budgetRepo,
		goalRepo:         goalRepo,
		generator:        generator,
		calculator:       calculator,
		generatorTimeout: generatorTimeout,
	}
}

// Execute serves the insights.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, input GenerateInsightsInput) (*GenerateInsightsOutput, error) {
	now := time.Now().UTC()

	if !input.Refresh {
		if cached, err := uc.insightRepo.FindLatestByUser(ctx, input.UserID); err == nil && cached.IsValid(now) {
			return &GenerateInsightsOutput{Insight: cached, Cached: true}, nil
		}
	}

	days := input.Days
	if days <= 0 {
		days = defaultContextDays
	} else if days > maxContextDays {
		days = maxContextDays
	}

	insightCtx, err := uc.buildContext(ctx, input.UserID, now, days)
	if err != nil {
		return nil, err
	}

	items, isFallback := uc.generate(ctx, insightCtx)

	snapshot, err := json.Marshal(insightCtx)
	if err != nil {
		return nil, err
	}

	insight := entity.NewAIInsight(input.UserID, items, string(snapshot), isFallback)

	if err := uc.insightRepo.Create(ctx, insight); err != nil {
		// Serving the generated items beats failing the request over a
		// cache write.
		slog.Error("failed to store insight document",
			"user_id", input.UserID, "error", err)
	}

	return &GenerateInsightsOutput{Insight: insight}, nil
}

// generate calls the external generator, substituting fallback items when it
// is unconfigured, times out, fails, or returns nothing.
func (uc *GenerateInsightsUseCase) generate(ctx context.Context, insightCtx *adapter.InsightContext) ([]entity.InsightItem, bool) {
	if !uc.generator.IsAvailable() {
		return FallbackInsights(insightCtx), true
	}

	genCtx, cancel := context.WithTimeout(ctx, uc.generatorTimeout)
	defer cancel()

	items, err := uc.generator.Generate(genCtx, insightCtx)
	if err != nil || len(items) == 0 {
		slog.Warn("insight generator failed, using fallback", "error", err)
		return FallbackInsights(insightCtx), true
	}

	return items, false
}

func (uc *GenerateInsightsUseCase) buildContext(ctx context.Context, userID uuid.UUID, now time.Time, days int) (*adapter.InsightContext, error) {
	start := now.AddDate(0, 0, -days)

	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &now,
	})
	if err != nil {
		return nil, err
	}

	topCategories, err := uc.transactionRepo.GetCategorySpending(ctx, userID, start, now, contextTopCategories)
	if err != nil {
		return nil, err
	}

	budgets, err := uc.budgetRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	overBudget, nearThreshold := 0, 0
	for _, item := range budgets {
		progress, err := uc.calculator.Calculate(ctx, item, now)
		if err != nil {
			return nil, err
		}
		if progress.OverBudget {
			overBudget++
		} else if progress.NearThreshold {
			nearThreshold++
		}
	}

	goals, err := uc.goalRepo.FindActiveByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	nearestDeadline := ""
	if len(goals) > 0 {
		nearestDeadline = goals[0].Deadline.Format("2006-01-02")
	}

	insightCtx := &adapter.InsightContext{
		Days:             days,
		TotalIncome:      totals.IncomeTotal,
		TotalExpenses:    totals.ExpenseTotal,
		NetBalance:       totals.NetTotal,
		TopCategories:    topCategories,
		ActiveBudgets:    len(budgets),
		OverBudgetCount:  overBudget,
		NearThresholdCnt: nearThreshold,
		ActiveGoals:      len(goals),
		NearestDeadline:  nearestDeadline,
	}
	insightCtx.SavingsRate = entity.MonthlyTotals{
		Income:  totals.IncomeTotal,
		Expense: totals.ExpenseTotal,
	}.SavingsRate()

	return insightCtx, nil
}
