// Package dashboard aggregates the user's financial snapshot.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/domain/entity"
)

const (
	recentTransactionLimit = 10
	topCategoryLimit       = 5
	activeGoalLimit        = 5
	trendMonths            = 6
)

// GetDashboardInput represents the input for the dashboard snapshot.
type GetDashboardInput struct {
	UserID uuid.UUID
}

// GetDashboardOutput is the aggregated snapshot the dashboard renders from.
type GetDashboardOutput struct {
	TotalBalance decimal.Decimal // Active accounts summed, credit debt netted
	Accounts     []*entity.Account

	MonthIncome   decimal.Decimal
	MonthExpenses decimal.Decimal
	MonthNet      decimal.Decimal
	SavingsRate   float64

	TopCategories []entity.CategorySpending
	Recent        []*entity.TransactionWithCategory
	Budgets       []*budget.BudgetProgress
	Alerts        []*budget.BudgetAlert
	Goals         []*entity.Goal
	Trend         []entity.MonthlyTotals
}

// GetDashboardUseCase assembles the dashboard snapshot. The independent
// sections are fetched concurrently; one failing section fails the request.
type GetDashboardUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	goalRepo        adapter.GoalRepository
	calculator      *budget.ProgressCalculator
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
	calculator *budget.ProgressCalculator,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		goalRepo:        goalRepo,
		calculator:      calculator,
	}
}

// Execute assembles the snapshot.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	out := &GetDashboardOutput{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := uc.accountRepo.FindActiveByUser(ctx, input.UserID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, account := range accounts {
			total = total.Add(account.Balance)
		}
		out.Accounts = accounts
		out.TotalBalance = total
		return nil
	})

	g.Go(func() error {
		totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
			UserID:    input.UserID,
			StartDate: &monthStart,
			EndDate:   &monthEnd,
		})
		if err != nil {
			return err
		}
		out.MonthIncome = totals.IncomeTotal
		out.MonthExpenses = totals.ExpenseTotal
		out.MonthNet = totals.NetTotal
		out.SavingsRate = entity.MonthlyTotals{
			Income:  totals.IncomeTotal,
			Expense: totals.ExpenseTotal,
		}.SavingsRate()
		return nil
	})

	g.Go(func() error {
		top, err := uc.transactionRepo.GetCategorySpending(ctx, input.UserID, monthStart, monthEnd, topCategoryLimit)
		if err != nil {
			return err
		}
		out.TopCategories = top
		return nil
	})

	g.Go(func() error {
		recent, err := uc.transactionRepo.FindRecent(ctx, input.UserID, recentTransactionLimit)
		if err != nil {
			return err
		}
		out.Recent = recent
		return nil
	})

	g.Go(func() error {
		budgets, alerts, err := uc.budgetSection(ctx, input.UserID, now)
		if err != nil {
			return err
		}
		out.Budgets = budgets
		out.Alerts = alerts
		return nil
	})

	g.Go(func() error {
		goals, err := uc.goalRepo.FindActiveByUser(ctx, input.UserID, activeGoalLimit)
		if err != nil {
			return err
		}
		out.Goals = goals
		return nil
	})

	g.Go(func() error {
		trend, err := uc.transactionRepo.GetMonthlyTotals(ctx, input.UserID, trendMonths)
		if err != nil {
			return err
		}
		out.Trend = trend
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (uc *GetDashboardUseCase) budgetSection(ctx context.Context, userID uuid.UUID, now time.Time) ([]*budget.BudgetProgress, []*budget.BudgetAlert, error) {
	items, err := uc.budgetRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	budgets := make([]*budget.BudgetProgress, 0, len(items))
	alerts := make([]*budget.BudgetAlert, 0)
	for _, item := range items {
		progress, err := uc.calculator.Calculate(ctx, item, now)
		if err != nil {
			return nil, nil, err
		}
		budgets = append(budgets, progress)
		if alert := budget.AlertFor(progress); alert != nil {
			alerts = append(alerts, alert)
		}
	}

	return budgets, alerts, nil
}
