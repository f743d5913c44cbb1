package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// topCategoryLimit caps the per-category breakdown in the stats response.
const topCategoryLimit = 10

// TransactionStatsInput represents the input for transaction statistics.
type TransactionStatsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	AccountID *uuid.UUID
}

// TransactionStatsOutput represents aggregated statistics over a date range.
type TransactionStatsOutput struct {
	Totals      *entity.TransactionTotals
	ByCategory  []entity.CategorySpending
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// TransactionStatsUseCase computes income/expense totals and the per-category
// expense breakdown for a date range. The range defaults to the current
// calendar month.
type TransactionStatsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewTransactionStatsUseCase creates a new TransactionStatsUseCase instance.
func NewTransactionStatsUseCase(transactionRepo adapter.TransactionRepository) *TransactionStatsUseCase {
	return &TransactionStatsUseCase{transactionRepo: transactionRepo}
}

// Execute computes the statistics.
func (uc *TransactionStatsUseCase) Execute(ctx context.Context, input TransactionStatsInput) (*TransactionStatsOutput, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
		AccountID: input.AccountID,
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		return nil, err
	}

	byCategory, err := uc.transactionRepo.GetCategorySpending(ctx, input.UserID, start, end, topCategoryLimit)
	if err != nil {
		return nil, err
	}

	return &TransactionStatsOutput{
		Totals:      totals,
		ByCategory:  byCategory,
		PeriodStart: start,
		PeriodEnd:   end,
	}, nil
}
