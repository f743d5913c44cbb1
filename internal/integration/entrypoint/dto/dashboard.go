package dto

import (
	"fmt"

	"github.com/finsight/backend/internal/application/usecase/account"
	"github.com/finsight/backend/internal/application/usecase/dashboard"
	"github.com/finsight/backend/internal/application/usecase/goal"
	"github.com/finsight/backend/internal/application/usecase/transaction"
)

// MonthlyTotalsResponse represents income/expense totals for one month.
type MonthlyTotalsResponse struct {
	Month       string  `json:"month"` // YYYY-MM
	Income      string  `json:"income"`
	Expense     string  `json:"expense"`
	SavingsRate float64 `json:"savings_rate"`
}

// DashboardResponse is the aggregated snapshot the dashboard renders from.
type DashboardResponse struct {
	TotalBalance string            `json:"total_balance"`
	Accounts     []AccountResponse `json:"accounts"`

	MonthIncome   string  `json:"month_income"`
	MonthExpenses string  `json:"month_expenses"`
	MonthNet      string  `json:"month_net"`
	SavingsRate   float64 `json:"savings_rate"`

	TopCategories []CategorySpendingResponse `json:"top_categories"`
	Recent        []TransactionResponse      `json:"recent_transactions"`
	Budgets       []BudgetProgressResponse   `json:"budgets"`
	Alerts        []BudgetAlertResponse      `json:"alerts"`
	Goals         []GoalResponse             `json:"goals"`
	Trend         []MonthlyTotalsResponse    `json:"trend"`
}

// ToDashboardResponse converts a dashboard output to its DTO.
func ToDashboardResponse(out *dashboard.GetDashboardOutput) DashboardResponse {
	accounts := make([]AccountResponse, len(out.Accounts))
	for i, a := range out.Accounts {
		accounts[i] = ToAccountResponse(&account.AccountOutput{Account: a})
	}

	recent := make([]TransactionResponse, len(out.Recent))
	for i, t := range out.Recent {
		recent[i] = ToTransactionResponse(&transaction.TransactionOutput{
			Transaction: t.Transaction,
			Category:    t.Category,
		})
	}

	goals := make([]GoalResponse, len(out.Goals))
	for i, g := range out.Goals {
		goals[i] = ToGoalResponse(&goal.GoalOutput{Goal: g, Progress: g.Progress()})
	}

	trend := make([]MonthlyTotalsResponse, len(out.Trend))
	for i, m := range out.Trend {
		trend[i] = MonthlyTotalsResponse{
			Month:       fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)),
			Income:      m.Income.StringFixed(2),
			Expense:     m.Expense.StringFixed(2),
			SavingsRate: m.SavingsRate(),
		}
	}

	return DashboardResponse{
		TotalBalance:  out.TotalBalance.StringFixed(2),
		Accounts:      accounts,
		MonthIncome:   out.MonthIncome.StringFixed(2),
		MonthExpenses: out.MonthExpenses.StringFixed(2),
		MonthNet:      out.MonthNet.StringFixed(2),
		SavingsRate:   out.SavingsRate,
		TopCategories: ToCategorySpendingResponses(out.TopCategories),
		Recent:        recent,
		Budgets:       ToBudgetListResponse(out.Budgets).Budgets,
		Alerts:        ToBudgetAlertListResponse(out.Alerts).Alerts,
		Goals:         goals,
		Trend:         trend,
	}
}
