// Package goal contains savings goal use cases.
package goal

import "github.com/finsight/backend/internal/domain/entity"

// GoalOutput represents a goal returned by use cases.
type GoalOutput struct {
	Goal     *entity.Goal
	Progress float64 // Funded share of the target, capped at 100
}

func toGoalOutput(goal *entity.Goal) *GoalOutput {
	return &GoalOutput{Goal: goal, Progress: goal.Progress()}
}
