package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal updates. CurrentAmount only
// moves through contributions. Nil pointer fields are left unchanged.
type UpdateGoalInput struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	Title        *string
	TargetAmount *decimal.Decimal
	Deadline     *time.Time
	Status       *entity.GoalStatus
}

// UpdateGoalOutput represents the output of goal updates.
type UpdateGoalOutput struct {
	Goal *GoalOutput
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > MaxGoalTitleLength {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"goal title is required and must not exceed 200 characters",
				nil,
			)
		}
		goal.Title = *input.Title
	}

	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetAmount,
				"target amount must be positive",
				domainerror.ErrInvalidTargetAmount,
			)
		}
		goal.TargetAmount = *input.TargetAmount

		// Raising the target can reopen a completed goal; lowering it can
		// complete an active one.
		switch {
		case goal.Status == entity.GoalStatusCompleted && goal.CurrentAmount.LessThan(goal.TargetAmount):
			goal.Status = entity.GoalStatusActive
		case goal.Status == entity.GoalStatusActive && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount):
			goal.Status = entity.GoalStatusCompleted
		}
	}

	if input.Deadline != nil {
		goal.Deadline = *input.Deadline
	}

	if input.Status != nil {
		if !entity.ValidGoalStatus(*input.Status) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"goal status must be 'active', 'completed' or 'cancelled'",
				nil,
			)
		}
		goal.Status = *input.Status
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return &UpdateGoalOutput{Goal: toGoalOutput(goal)}, nil
}
