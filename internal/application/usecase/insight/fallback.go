// Package insight contains AI insight use cases.
package insight

import (
	"fmt"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// FallbackInsights derives deterministic insight items from the financial
// context when the external generator is unavailable or fails. The rules are
// intentionally simple: one item about the savings rate, one about budgets,
// one about goals.
func FallbackInsights(insightCtx *adapter.InsightContext) []entity.InsightItem {
	items := make([]entity.InsightItem, 0, entity.MaxInsightItems)

	items = append(items, savingsItem(insightCtx))

	if item := budgetItem(insightCtx); item != nil {
		items = append(items, *item)
	}

	if item := goalItem(insightCtx); item != nil {
		items = append(items, *item)
	}

	return items
}

func savingsItem(insightCtx *adapter.InsightContext) entity.InsightItem {
	switch {
	case insightCtx.TotalIncome.IsZero():
		return entity.InsightItem{
			Type:    "info",
			Title:   "No income recorded",
			Message: fmt.Sprintf("No income was recorded in the last %d days. Log your income to unlock savings insights.", insightCtx.Days),
			Icon:    "info",
			Color:   "blue",
		}
	case insightCtx.SavingsRate >= 20:
		return entity.InsightItem{
			Type:    "achievement",
			Title:   "Strong savings rate",
			Message: fmt.Sprintf("You saved %.0f%% of your income over the last %d days. Keep it up!", insightCtx.SavingsRate, insightCtx.Days),
			Icon:    "trending-up",
			Color:   "green",
		}
	case insightCtx.SavingsRate > 0:
		return entity.InsightItem{
			Type:    "tip",
			Title:   "Room to save more",
			Message: fmt.Sprintf("Your savings rate was %.0f%% over the last %d days. Aiming for 20%% gives you a stronger buffer.", insightCtx.SavingsRate, insightCtx.Days),
			Icon:    "piggy-bank",
			Color:   "yellow",
		}
	default:
		return entity.InsightItem{
			Type:    "warning",
			Title:   "Spending exceeded income",
			Message: fmt.Sprintf("You spent more than you earned in the last %d days. Reviewing your largest expense categories is a good place to start.", insightCtx.Days),
			Icon:    "alert-triangle",
			Color:   "red",
		}
	}
}

func budgetItem(insightCtx *adapter.InsightContext) *entity.InsightItem {
	switch {
	case insightCtx.OverBudgetCount > 0:
		return &entity.InsightItem{
			Type:    "warning",
			Title:   "Budgets exceeded",
			Message: fmt.Sprintf("%d of your %d active budgets are over their limit this period.", insightCtx.OverBudgetCount, insightCtx.ActiveBudgets),
			Icon:    "alert-circle",
			Color:   "red",
		}
	case insightCtx.NearThresholdCnt > 0:
		return &entity.InsightItem{
			Type:    "tip",
			Title:   "Budgets running hot",
			Message: fmt.Sprintf("%d of your budgets are close to their limit. A small course correction now avoids an overrun.", insightCtx.NearThresholdCnt),
			Icon:    "gauge",
			Color:   "yellow",
		}
	case insightCtx.ActiveBudgets > 0:
		return &entity.InsightItem{
			Type:    "achievement",
			Title:   "Budgets on track",
			Message: fmt.Sprintf("All %d of your active budgets are within their limits.", insightCtx.ActiveBudgets),
			Icon:    "check-circle",
			Color:   "green",
		}
	}
	return nil
}

func goalItem(insightCtx *adapter.InsightContext) *entity.InsightItem {
	if insightCtx.ActiveGoals == 0 {
		return nil
	}

	message := fmt.Sprintf("You have %d active savings goals.", insightCtx.ActiveGoals)
	if insightCtx.NearestDeadline != "" {
		message = fmt.Sprintf("You have %d active savings goals; the nearest deadline is %s.", insightCtx.ActiveGoals, insightCtx.NearestDeadline)
	}

	return &entity.InsightItem{
		Type:    "info",
		Title:   "Goals in progress",
		Message: message,
		Icon:    "target",
		Color:   "blue",
	}
}
