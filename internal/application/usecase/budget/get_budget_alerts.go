package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
)

// AlertType distinguishes the two budget alert conditions.
type AlertType string

const (
	AlertTypeOverBudget    AlertType = "over_budget"
	AlertTypeNearThreshold AlertType = "near_threshold"
)

// AlertSeverity ranks an alert condition.
type AlertSeverity string

const (
	AlertSeverityHigh   AlertSeverity = "high"
	AlertSeverityMedium AlertSeverity = "medium"
)

// BudgetAlert represents one triggered alert condition.
type BudgetAlert struct {
	Type     AlertType
	Severity AlertSeverity
	Message  string
	Progress *BudgetProgress
}

// GetBudgetAlertsInput represents the input for budget alerts.
type GetBudgetAlertsInput struct {
	UserID uuid.UUID
}

// GetBudgetAlertsOutput represents the output of budget alerts.
type GetBudgetAlertsOutput struct {
	Alerts []*BudgetAlert
}

// GetBudgetAlertsUseCase collects the active budgets currently in an alert
// state. Each budget yields at most one alert: over-budget wins over
// near-threshold.
type GetBudgetAlertsUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *ProgressCalculator
}

// NewGetBudgetAlertsUseCase creates a new GetBudgetAlertsUseCase instance.
func NewGetBudgetAlertsUseCase(budgetRepo adapter.BudgetRepository, calculator *ProgressCalculator) *GetBudgetAlertsUseCase {
	return &GetBudgetAlertsUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
	}
}

// Execute collects the triggered alerts.
func (uc *GetBudgetAlertsUseCase) Execute(ctx context.Context, input GetBudgetAlertsInput) (*GetBudgetAlertsOutput, error) {
	items, err := uc.budgetRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	alerts := make([]*BudgetAlert, 0)
	for _, item := range items {
		progress, err := uc.calculator.Calculate(ctx, item, now)
		if err != nil {
			return nil, err
		}

		if alert := AlertFor(progress); alert != nil {
			alerts = append(alerts, alert)
		}
	}

	return &GetBudgetAlertsOutput{Alerts: alerts}, nil
}

// AlertFor maps a progress snapshot to its alert, or nil when neither
// condition holds.
func AlertFor(progress *BudgetProgress) *BudgetAlert {
	name := ""
	if progress.Category != nil {
		name = progress.Category.Name
	}

	switch {
	case progress.OverBudget:
		return &BudgetAlert{
			Type:     AlertTypeOverBudget,
			Severity: AlertSeverityHigh,
			Message: fmt.Sprintf("You have exceeded your %s budget: spent %s of %s",
				name, progress.Spent.StringFixed(2), progress.Budget.Amount.StringFixed(2)),
			Progress: progress,
		}
	case progress.NearThreshold:
		return &BudgetAlert{
			Type:     AlertTypeNearThreshold,
			Severity: AlertSeverityMedium,
			Message: fmt.Sprintf("You have used %.0f%% of your %s budget",
				progress.Percentage, name),
			Progress: progress,
		}
	}
	return nil
}
