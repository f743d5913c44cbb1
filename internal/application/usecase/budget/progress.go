package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// BudgetProgress is the live spending state of one budget inside its current
// period window. It is always derived from completed expense transactions at
// read time, never stored.
type BudgetProgress struct {
	Budget        *entity.Budget
	Category      *entity.Category
	Spent         decimal.Decimal
	Remaining     decimal.Decimal // Negative when over budget
	Percentage    float64         // Capped at 100 for display
	OverBudget    bool
	NearThreshold bool
	PeriodStart   time.Time
	PeriodEnd     time.Time
}

// ProgressCalculator derives budget progress from the transaction ledger.
type ProgressCalculator struct {
	transactionRepo adapter.TransactionRepository
}

// NewProgressCalculator creates a new ProgressCalculator instance.
func NewProgressCalculator(transactionRepo adapter.TransactionRepository) *ProgressCalculator {
	return &ProgressCalculator{transactionRepo: transactionRepo}
}

// Calculate computes the progress of one budget as of now.
//
// The near-threshold comparison uses the uncapped percentage, so both flags
// hold once spending passes the limit. Alerting picks one: over-budget wins.
func (c *ProgressCalculator) Calculate(ctx context.Context, item *entity.BudgetWithCategory, now time.Time) (*BudgetProgress, error) {
	start, end := CurrentPeriod(item.Budget.Period, now)

	spent, err := c.transactionRepo.SumCompletedExpenses(ctx, item.Budget.UserID, item.Budget.CategoryID, start, end)
	if err != nil {
		return nil, err
	}

	progress := &BudgetProgress{
		Budget:      item.Budget,
		Category:    item.Category,
		Spent:       spent,
		Remaining:   item.Budget.Amount.Sub(spent),
		PeriodStart: start,
		PeriodEnd:   end,
	}
	var rawPct float64
	if item.Budget.Amount.IsPositive() {
		rawPct, _ = spent.Div(item.Budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
	}

	progress.Percentage = rawPct
	if progress.Percentage > 100 {
		progress.Percentage = 100
	}

	progress.OverBudget = spent.GreaterThan(item.Budget.Amount)
	progress.NearThreshold = rawPct >= float64(item.Budget.Threshold)

	return progress, nil
}
