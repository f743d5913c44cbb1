package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/budget"
	"github.com/finsight/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID    string `json:"category_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required"`
	Period        string `json:"period" binding:"required,oneof=weekly monthly yearly"`
	Threshold     int    `json:"threshold,omitempty" binding:"omitempty,min=1,max=100"`
	Notifications bool   `json:"notifications,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget updates.
type UpdateBudgetRequest struct {
	Amount        *string `json:"amount,omitempty"`
	Threshold     *int    `json:"threshold,omitempty" binding:"omitempty,min=1,max=100"`
	IsActive      *bool   `json:"is_active,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID            string            `json:"id"`
	CategoryID    string            `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Amount        string            `json:"amount"`
	Period        string            `json:"period"`
	Threshold     int               `json:"threshold"`
	IsActive      bool              `json:"is_active"`
	Notifications bool              `json:"notifications"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BudgetProgressResponse represents a budget with its live progress.
type BudgetProgressResponse struct {
	BudgetResponse
	Spent         string  `json:"spent"`
	Remaining     string  `json:"remaining"`
	Percentage    float64 `json:"percentage"`
	OverBudget    bool    `json:"over_budget"`
	NearThreshold bool    `json:"near_threshold"`
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetProgressResponse `json:"budgets"`
}

// BudgetAlertResponse represents one triggered budget alert.
type BudgetAlertResponse struct {
	Type     string                 `json:"type"`
	Severity string                 `json:"severity"`
	Message  string                 `json:"message"`
	Progress BudgetProgressResponse `json:"progress"`
}

// BudgetAlertListResponse represents the response for listing budget alerts.
type BudgetAlertListResponse struct {
	Alerts []BudgetAlertResponse `json:"alerts"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget, category *entity.Category) BudgetResponse {
	response := BudgetResponse{
		ID:            b.ID.String(),
		CategoryID:    b.CategoryID.String(),
		Amount:        b.Amount.StringFixed(2),
		Period:        string(b.Period),
		Threshold:     b.Threshold,
		IsActive:      b.IsActive,
		Notifications: b.Notifications,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if category != nil {
		cat := ToCategoryResponse(category)
		response.Category = &cat
	}
	return response
}

// ToBudgetProgressResponse converts a budget progress to its DTO.
func ToBudgetProgressResponse(p *budget.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		BudgetResponse: ToBudgetResponse(p.Budget, p.Category),
		Spent:          p.Spent.StringFixed(2),
		Remaining:      p.Remaining.StringFixed(2),
		Percentage:     p.Percentage,
		OverBudget:     p.OverBudget,
		NearThreshold:  p.NearThreshold,
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
	}
}

// ToBudgetListResponse converts budget progress entries to BudgetListResponse.
func ToBudgetListResponse(progress []*budget.BudgetProgress) BudgetListResponse {
	items := make([]BudgetProgressResponse, len(progress))
	for i, p := range progress {
		items[i] = ToBudgetProgressResponse(p)
	}
	return BudgetListResponse{Budgets: items}
}

// ToBudgetAlertListResponse converts triggered alerts to BudgetAlertListResponse.
func ToBudgetAlertListResponse(alerts []*budget.BudgetAlert) BudgetAlertListResponse {
	items := make([]BudgetAlertResponse, len(alerts))
	for i, a := range alerts {
		items[i] = BudgetAlertResponse{
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Message:  a.Message,
			Progress: ToBudgetProgressResponse(a.Progress),
		}
	}
	return BudgetAlertListResponse{Alerts: items}
}
