// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// InsightContext is the financial snapshot handed to the insight generator.
// The same snapshot feeds the deterministic fallback when the external
// generator is unavailable.
type InsightContext struct {
	Days          int
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal
	SavingsRate   float64 // Percentage, zero when there was no income

	TopCategories []entity.CategorySpending

	ActiveBudgets    int
	OverBudgetCount  int
	NearThresholdCnt int

	ActiveGoals     int
	NearestDeadline string // RFC 3339 date of the closest active goal deadline, empty when none
}

// InsightGenerator defines the interface for the external natural-language
// insight generator. Calls are bounded by the caller's context deadline;
// failure or unavailability must be recovered by substituting fallback
// insights, never surfaced as a request failure.
type InsightGenerator interface {
	// Generate produces up to entity.MaxInsightItems structured insight items
	// from the given financial context.
	Generate(ctx context.Context, insightCtx *InsightContext) ([]entity.InsightItem, error)

	// IsAvailable reports whether the generator is configured.
	IsAvailable() bool
}
