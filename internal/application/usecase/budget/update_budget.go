package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for budget updates. The category and
// period are immutable; replacing either means creating a new budget. Nil
// pointer fields are left unchanged.
type UpdateBudgetInput struct {
	UserID        uuid.UUID
	BudgetID      uuid.UUID
	Amount        *decimal.Decimal
	Threshold     *int
	IsActive      *bool
	Notifications *bool
}

// UpdateBudgetOutput represents the output of budget updates.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{budgetRepo: budgetRepo}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
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

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetAmount,
				"budget amount must be positive",
				domainerror.ErrInvalidBudgetAmount,
			)
		}
		budget.Amount = *input.Amount
	}

	if input.Threshold != nil {
		if *input.Threshold < 1 || *input.Threshold > 100 {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeMissingBudgetFields,
				"threshold must be between 1 and 100",
				nil,
			)
		}
		budget.Threshold = *input.Threshold
	}

	if input.IsActive != nil {
		// Reactivating must not violate the one-active-budget rule.
		if *input.IsActive && !budget.IsActive {
			exists, err := uc.budgetRepo.ExistsActive(ctx, budget.UserID, budget.CategoryID, budget.Period, budget.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domainerror.NewBudgetError(
					domainerror.ErrCodeBudgetAlreadyExists,
					"active budget already exists for this category and period",
					domainerror.ErrBudgetAlreadyExists,
				)
			}
		}
		budget.IsActive = *input.IsActive
	}

	if input.Notifications != nil {
		budget.Notifications = *input.Notifications
	}

	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}
