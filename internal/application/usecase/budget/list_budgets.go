package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListBudgetsOutput represents the output of listing budgets, with live
// progress for each.
type ListBudgetsOutput struct {
	Budgets []*BudgetProgress
}

// ListBudgetsUseCase handles budget listing logic.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *ProgressCalculator
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository, calculator *ProgressCalculator) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
	}
}

// Execute retrieves the user's budgets with their current progress.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	find := uc.budgetRepo.FindByUser
	if input.ActiveOnly {
		find = uc.budgetRepo.FindActiveByUser
	}

	items, err := find(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budgets := make([]*BudgetProgress, 0, len(items))
	for _, item := range items {
		progress, err := uc.calculator.Calculate(ctx, item, now)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, progress)
	}

	return &ListBudgetsOutput{Budgets: budgets}, nil
}
