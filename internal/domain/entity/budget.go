// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence window of a spending budget.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// DefaultBudgetThreshold is the near-threshold alert percentage applied when
// a budget does not specify one.
const DefaultBudgetThreshold = 80

// Budget is a spending ceiling for one expense category over a recurring
// period. Spending against the budget is always derived live from completed
// expense transactions inside the current period window; it is never stored.
//
// At most one active budget may exist per (user, category, period) triple.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CategoryID    uuid.UUID
	Amount        decimal.Decimal // Positive spending ceiling
	Period        BudgetPeriod
	Threshold     int // Percentage at which the near-threshold alert fires
	IsActive      bool
	Notifications bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewBudget creates a new active Budget entity. A non-positive threshold
// falls back to the default.
func NewBudget(userID, categoryID uuid.UUID, amount decimal.Decimal, period BudgetPeriod, threshold int, notifications bool) *Budget {
	now := time.Now().UTC()

	if threshold <= 0 {
		threshold = DefaultBudgetThreshold
	}

	return &Budget{
		ID:            uuid.New(),
		UserID:        userID,
		CategoryID:    categoryID,
		Amount:        amount,
		Period:        period,
		Threshold:     threshold,
		IsActive:      true,
		Notifications: notifications,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValidBudgetPeriod reports whether the given period is supported.
func ValidBudgetPeriod(period BudgetPeriod) bool {
	switch period {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// BudgetWithCategory pairs a budget with its category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}
