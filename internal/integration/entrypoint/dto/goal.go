package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/goal"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	TargetAmount string `json:"target_amount" binding:"required"`
	Deadline     string `json:"deadline" binding:"required"`
}

// UpdateGoalRequest represents the request body for goal updates.
type UpdateGoalRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=200"`
	TargetAmount *string `json:"target_amount,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=active completed cancelled"`
}

// ContributeGoalRequest represents the request body for a goal contribution.
type ContributeGoalRequest struct {
	Amount    string  `json:"amount" binding:"required"`
	AccountID *string `json:"account_id,omitempty" binding:"omitempty,uuid"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Deadline      string    `json:"deadline"`
	Status        string    `json:"status"`
	Progress      float64   `json:"progress"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a goal use case output to a GoalResponse DTO.
func ToGoalResponse(out *goal.GoalOutput) GoalResponse {
	g := out.Goal
	return GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Deadline:      g.Deadline.Format("2006-01-02"),
		Status:        string(g.Status),
		Progress:      out.Progress,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goal outputs to GoalListResponse.
func ToGoalListResponse(outputs []*goal.GoalOutput) GoalListResponse {
	goals := make([]GoalResponse, len(outputs))
	for i, out := range outputs {
		goals[i] = ToGoalResponse(out)
	}
	return GoalListResponse{Goals: goals}
}
