package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// spentStubRepo returns a fixed spent total regardless of the window.
type spentStubRepo struct {
	spent decimal.Decimal
}

func (s *spentStubRepo) Create(ctx context.Context, txn *entity.Transaction) error { return nil }
func (s *spentStubRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (s *spentStubRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return nil, nil
}
func (s *spentStubRepo) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}
func (s *spentStubRepo) FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}
func (s *spentStubRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return nil, nil
}
func (s *spentStubRepo) SumCompletedExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return s.spent, nil
}
func (s *spentStubRepo) GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]entity.CategorySpending, error) {
	return nil, nil
}
func (s *spentStubRepo) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]entity.MonthlyTotals, error) {
	return nil, nil
}
func (s *spentStubRepo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return 0, nil
}
func (s *spentStubRepo) Update(ctx context.Context, txn *entity.Transaction) error { return nil }
func (s *spentStubRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func monthlyBudget(amount string, threshold int) *entity.BudgetWithCategory {
	userID := uuid.New()
	category := entity.NewCategory(userID, "Dining", entity.CategoryTypeExpense, "", "")
	budget := entity.NewBudget(userID, category.ID, decimal.RequireFromString(amount), entity.BudgetPeriodMonthly, threshold, false)
	return &entity.BudgetWithCategory{Budget: budget, Category: category}
}

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		threshold      int
		spent          string
		wantPercentage float64
		wantRemaining  string
		wantOver       bool
		wantNear       bool
	}{
		{
			name:           "well under budget",
			amount:         "100",
			threshold:      80,
			spent:          "25",
			wantPercentage: 25,
			wantRemaining:  "75",
		},
		{
			name:           "at threshold fires near alert",
			amount:         "100",
			threshold:      80,
			spent:          "85",
			wantPercentage: 85,
			wantRemaining:  "15",
			wantNear:       true,
		},
		{
			name:           "exactly at the ceiling is near, not over",
			amount:         "100",
			threshold:      80,
			spent:          "100",
			wantPercentage: 100,
			wantRemaining:  "0",
			wantNear:       true,
		},
		{
			name:           "overrun goes negative and sets both flags",
			amount:         "100",
			threshold:      80,
			spent:          "120",
			wantPercentage: 100, // Capped for display
			wantRemaining:  "-20",
			wantOver:       true,
			wantNear:       true,
		},
		{
			name:           "no spending",
			amount:         "100",
			threshold:      80,
			spent:          "0",
			wantPercentage: 0,
			wantRemaining:  "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calculator := NewProgressCalculator(&spentStubRepo{spent: decimal.RequireFromString(tt.spent)})
			item := monthlyBudget(tt.amount, tt.threshold)

			progress, err := calculator.Calculate(context.Background(), item, time.Now().UTC())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if progress.Percentage != tt.wantPercentage {
				t.Errorf("percentage = %v, want %v", progress.Percentage, tt.wantPercentage)
			}
			if !progress.Remaining.Equal(decimal.RequireFromString(tt.wantRemaining)) {
				t.Errorf("remaining = %s, want %s", progress.Remaining, tt.wantRemaining)
			}
			if progress.OverBudget != tt.wantOver {
				t.Errorf("overBudget = %v, want %v", progress.OverBudget, tt.wantOver)
			}
			if progress.NearThreshold != tt.wantNear {
				t.Errorf("nearThreshold = %v, want %v", progress.NearThreshold, tt.wantNear)
			}
		})
	}
}

func TestAlertForMapsConditions(t *testing.T) {
	item := monthlyBudget("100", 80)

	over := &BudgetProgress{Budget: item.Budget, Category: item.Category,
		Spent: decimal.RequireFromString("120"), OverBudget: true}
	if alert := AlertFor(over); alert == nil || alert.Type != AlertTypeOverBudget || alert.Severity != AlertSeverityHigh {
		t.Errorf("over-budget progress did not map to a high over_budget alert: %+v", alert)
	}

	near := &BudgetProgress{Budget: item.Budget, Category: item.Category,
		Spent: decimal.RequireFromString("85"), Percentage: 85, NearThreshold: true}
	if alert := AlertFor(near); alert == nil || alert.Type != AlertTypeNearThreshold || alert.Severity != AlertSeverityMedium {
		t.Errorf("near-threshold progress did not map to a medium near_threshold alert: %+v", alert)
	}

	// Past the limit both flags hold; the over-budget alert takes priority.
	both := &BudgetProgress{Budget: item.Budget, Category: item.Category,
		Spent: decimal.RequireFromString("120"), OverBudget: true, NearThreshold: true}
	if alert := AlertFor(both); alert == nil || alert.Type != AlertTypeOverBudget {
		t.Errorf("overrun did not map to over_budget alert: %+v", alert)
	}

	calm := &BudgetProgress{Budget: item.Budget, Category: item.Category,
		Spent: decimal.RequireFromString("10")}
	if alert := AlertFor(calm); alert != nil {
		t.Errorf("quiet budget produced alert: %+v", alert)
	}
}
