package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// GetBudgetProgressInput represents the input for single budget progress.
type GetBudgetProgressInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetBudgetProgressOutput represents the output of single budget progress.
type GetBudgetProgressOutput struct {
	Progress *BudgetProgress
}

// GetBudgetProgressUseCase computes the live progress of one budget.
type GetBudgetProgressUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	calculator   *ProgressCalculator
}

// NewGetBudgetProgressUseCase creates a new GetBudgetProgressUseCase instance.
func NewGetBudgetProgressUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	calculator *ProgressCalculator,
) *GetBudgetProgressUseCase {
	return &GetBudgetProgressUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		calculator:   calculator,
	}
}

// Execute computes the progress of the budget as of now.
func (uc *GetBudgetProgressUseCase) Execute(ctx context.Context, input GetBudgetProgressInput) (*GetBudgetProgressOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}

	if budget.UserID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNotAuthorizedBudget,
			"budget does not belong to user",
			domainerror.ErrNotAuthorizedToModifyBudget,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
	if err != nil {
		return nil, err
	}

	progress, err := uc.calculator.Calculate(ctx, &entity.BudgetWithCategory{Budget: budget, Category: category}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &GetBudgetProgressOutput{Progress: progress}, nil
}
