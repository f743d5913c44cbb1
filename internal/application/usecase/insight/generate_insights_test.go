package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

type fakeInsightRepo struct {
	latest  *entity.AIInsight
	created []*entity.AIInsight
}

func (f *fakeInsightRepo) Create(ctx context.Context, insight *entity.AIInsight) error {
	f.created = append(f.created, insight)
	f.latest = insight
	return nil
}

func (f *fakeInsightRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.AIInsight, error) {
	if f.latest == nil {
		return nil, domainerror.ErrInsightNotFound
	}
	return f.latest, nil
}

type stubTransactionRepo struct {
	totals entity.TransactionTotals
}

func (s *stubTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error { return nil }
func (s *stubTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (s *stubTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return nil, nil
}
func (s *stubTransactionRepo) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}
func (s *stubTransactionRepo) FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}
func (s *stubTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	totals := s.totals
	return &totals, nil
}
func (s *stubTransactionRepo) SumCompletedExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (s *stubTransactionRepo) GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]entity.CategorySpending, error) {
	return nil, nil
}
func (s *stubTransactionRepo) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]entity.MonthlyTotals, error) {
	return nil, nil
}
func (s *stubTransactionRepo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}
func (s *stubTransactionRepo) Update(ctx context.Context, txn *entity.Transaction) error { return nil }
func (s *stubTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

type stubBudgetRepo struct{}

func (stubBudgetRepo) Create(ctx context.Context, b *entity.Budget) error { return nil }
func (stubBudgetRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	return nil, nil
}
func (stubBudgetRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	return nil, nil
}
func (stubBudgetRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	return nil, nil
}
func (stubBudgetRepo) ExistsActive(ctx context.Context, userID, categoryID uuid.UUID, period entity.BudgetPeriod, excludeID uuid.UUID) (bool, error) {
	return false, nil
}
func (stubBudgetRepo) FindActiveWithNotifications(ctx context.Context) ([]*entity.BudgetWithCategory, error) {
	return nil, nil
}
func (stubBudgetRepo) Update(ctx context.Context, b *entity.Budget) error { return nil }
func (stubBudgetRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (stubBudgetRepo) DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return nil
}

type stubGoalRepo struct{}

func (stubGoalRepo) Create(ctx context.Context, g *entity.Goal) error { return nil }
func (stubGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return nil, nil
}
func (stubGoalRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return nil, nil
}
func (stubGoalRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Goal, error) {
	return nil, nil
}
func (stubGoalRepo) Update(ctx context.Context, g *entity.Goal) error { return nil }
func (stubGoalRepo) Delete(ctx context.Context, id uuid.UUID) error   { return nil }

type fakeGenerator struct {
	available bool
	items     []entity.InsightItem
	err       error
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, insightCtx *adapter.InsightContext) ([]entity.InsightItem, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeGenerator) IsAvailable() bool { return f.available }

func newInsightUseCase(repo *fakeInsightRepo, generator *fakeGenerator) *GenerateInsightsUseCase {
	txnRepo := &stubTransactionRepo{totals: entity.TransactionTotals{
		IncomeTotal:  decimal.RequireFromString("3000"),
		ExpenseTotal: decimal.RequireFromString("2100"),
		NetTotal:     decimal.RequireFromString("900"),
	}}
	return NewGenerateInsightsUseCase(
		repo, txnRepo, stubBudgetRepo{}, stubGoalRepo{}, generator,
		budget.NewProgressCalculator(txnRepo), 0,
	)
}

func TestGenerateUsesGenerator(t *testing.T) {
	repo := &fakeInsightRepo{}
	generator := &fakeGenerator{
		available: true,
		items: []entity.InsightItem{
			{Type: "tip", Title: "Generated", Message: "from the model"},
		},
	}

	out, err := newInsightUseCase(repo, generator).Execute(context.Background(), GenerateInsightsInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Cached {
		t.Error("fresh generation reported as cached")
	}
	if out.Insight.IsFallback {
		t.Error("generator result marked as fallback")
	}
	if len(out.Insight.Items) != 1 || out.Insight.Items[0].Title != "Generated" {
		t.Errorf("unexpected items: %+v", out.Insight.Items)
	}

	wantValid := out.Insight.GeneratedAt.Add(entity.InsightTTL)
	if !out.Insight.ValidUntil.Equal(wantValid) {
		t.Errorf("validUntil = %s, want %s", out.Insight.ValidUntil, wantValid)
	}
}

func TestGenerateServesValidCache(t *testing.T) {
	repo := &fakeInsightRepo{}
	generator := &fakeGenerator{available: true, items: []entity.InsightItem{{Title: "x"}}}
	uc := newInsightUseCase(repo, generator)
	userID := uuid.New()

	first, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !second.Cached {
		t.Error("second call did not hit the cache")
	}
	if second.Insight.ID != first.Insight.ID {
		t.Error("cache returned a different document")
	}
	if generator.calls != 1 {
		t.Errorf("generator called %d times, want 1", generator.calls)
	}
}

func TestGenerateRefreshSkipsCache(t *testing.T) {
	repo := &fakeInsightRepo{}
	generator := &fakeGenerator{available: true, items: []entity.InsightItem{{Title: "x"}}}
	uc := newInsightUseCase(repo, generator)
	userID := uuid.New()

	if _, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID, Refresh: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Cached {
		t.Error("refresh served the cache")
	}
	if generator.calls != 2 {
		t.Errorf("generator called %d times, want 2", generator.calls)
	}
}

func TestGenerateExpiredCacheRegenerates(t *testing.T) {
	repo := &fakeInsightRepo{}
	stale := entity.NewAIInsight(uuid.New(), []entity.InsightItem{{Title: "old"}}, "{}", false)
	stale.ValidUntil = time.Now().UTC().Add(-time.Minute)
	repo.latest = stale

	generator := &fakeGenerator{available: true, items: []entity.InsightItem{{Title: "new"}}}
	out, err := newInsightUseCase(repo, generator).Execute(context.Background(), GenerateInsightsInput{UserID: stale.UserID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Cached {
		t.Error("expired document served from cache")
	}
	if out.Insight.Items[0].Title != "new" {
		t.Errorf("items = %+v, want regenerated", out.Insight.Items)
	}
}

func TestGenerateFallsBackOnGeneratorFailure(t *testing.T) {
	repo := &fakeInsightRepo{}
	generator := &fakeGenerator{available: true, err: errors.New("quota exhausted")}

	out, err := newInsightUseCase(repo, generator).Execute(context.Background(), GenerateInsightsInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("generator failure surfaced as request failure: %v", err)
	}

	if !out.Insight.IsFallback {
		t.Error("fallback document not flagged")
	}
	if len(out.Insight.Items) == 0 {
		t.Fatal("fallback produced no items")
	}

	wantValid := out.Insight.GeneratedAt.Add(entity.InsightFallbackTTL)
	if !out.Insight.ValidUntil.Equal(wantValid) {
		t.Errorf("fallback validUntil = %s, want %s", out.Insight.ValidUntil, wantValid)
	}
}

func TestGenerateFallsBackWhenUnconfigured(t *testing.T) {
	repo := &fakeInsightRepo{}
	generator := &fakeGenerator{available: false}

	out, err := newInsightUseCase(repo, generator).Execute(context.Background(), GenerateInsightsInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Insight.IsFallback {
		t.Error("fallback document not flagged")
	}
	if generator.calls != 0 {
		t.Errorf("unavailable generator was called %d times", generator.calls)
	}
}

func TestFallbackInsightsRules(t *testing.T) {
	ctx := &adapter.InsightContext{
		Days:          30,
		TotalIncome:   decimal.RequireFromString("3000"),
		TotalExpenses: decimal.RequireFromString("2100"),
		SavingsRate:   30,
		ActiveBudgets: 2, OverBudgetCount: 1,
		ActiveGoals: 1, NearestDeadline: "2026-12-01",
	}

	items := FallbackInsights(ctx)
	if len(items) != 3 {
		t.Fatalf("item count = %d, want 3", len(items))
	}
	if items[0].Type != "achievement" {
		t.Errorf("savings item type = %s, want achievement for 30%% rate", items[0].Type)
	}
	if items[1].Type != "warning" {
		t.Errorf("budget item type = %s, want warning with an over-budget", items[1].Type)
	}
	if items[2].Type != "info" {
		t.Errorf("goal item type = %s, want info", items[2].Type)
	}
}
