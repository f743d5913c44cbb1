package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
	Status *entity.GoalStatus // Optional status filter
}

// ListGoalsOutput represents the output of listing goals, nearest deadline
// first.
type ListGoalsOutput struct {
	Goals []*GoalOutput
}

// ListGoalsUseCase handles goal listing logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute retrieves the user's goals.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*GoalOutput, 0, len(goals))
	for _, goal := range goals {
		if input.Status != nil && goal.Status != *input.Status {
			continue
		}
		outputs = append(outputs, toGoalOutput(goal))
	}

	return &ListGoalsOutput{Goals: outputs}, nil
}
