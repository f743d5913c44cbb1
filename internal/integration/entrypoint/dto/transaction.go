package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string   `json:"type" binding:"required,oneof=income expense transfer"`
	Amount      string   `json:"amount" binding:"required"`
	AccountID   string   `json:"account_id" binding:"required,uuid"`
	ToAccountID *string  `json:"to_account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID  *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Date        string   `json:"date" binding:"required"`
	Status      string   `json:"status,omitempty" binding:"omitempty,oneof=completed pending"`
	Description string   `json:"description,omitempty" binding:"omitempty,max=255"`
	Notes       string   `json:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction updates.
// Amount, type, accounts and category are immutable; delete and recreate to
// change them.
type UpdateTransactionRequest struct {
	Date        *string   `json:"date,omitempty"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=255"`
	Notes       *string   `json:"notes,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Amount      string            `json:"amount"`
	AccountID   string            `json:"account_id"`
	ToAccountID *string           `json:"to_account_id,omitempty"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Date        string            `json:"date"`
	Status      string            `json:"status"`
	Description string            `json:"description,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TransactionListResponse represents one page of a transaction listing.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// CategorySpendingResponse represents one category's spending total.
type CategorySpendingResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// TransactionStatsResponse represents aggregated statistics over a date range.
type TransactionStatsResponse struct {
	TotalIncome   string                     `json:"total_income"`
	TotalExpenses string                     `json:"total_expenses"`
	Net           string                     `json:"net"`
	ByCategory    []CategorySpendingResponse `json:"by_category"`
	PeriodStart   string                     `json:"period_start"`
	PeriodEnd     string                     `json:"period_end"`
}

// ToTransactionResponse converts a transaction use case output to a
// TransactionResponse DTO.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	txn := out.Transaction
	response := TransactionResponse{
		ID:          txn.ID.String(),
		Type:        string(txn.Type),
		Amount:      txn.Amount.StringFixed(2),
		AccountID:   txn.AccountID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Status:      string(txn.Status),
		Description: txn.Description,
		Notes:       txn.Notes,
		Tags:        txn.Tags,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}

	if txn.ToAccountID != nil {
		id := txn.ToAccountID.String()
		response.ToAccountID = &id
	}
	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		response.CategoryID = &id
	}
	if out.Category != nil {
		cat := ToCategoryResponse(out.Category)
		response.Category = &cat
	}

	return response
}

// ToTransactionListResponse converts a paged listing output to
// TransactionListResponse.
func ToTransactionListResponse(out *transaction.ListTransactionsOutput) TransactionListResponse {
	items := make([]TransactionResponse, len(out.Transactions))
	for i, t := range out.Transactions {
		items[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: items,
		Total:        out.Total,
		Page:         out.Page,
		Limit:        out.Limit,
		TotalPages:   out.TotalPages,
	}
}

// ToCategorySpendingResponses converts category spending totals to DTOs.
func ToCategorySpendingResponses(spending []entity.CategorySpending) []CategorySpendingResponse {
	items := make([]CategorySpendingResponse, len(spending))
	for i, s := range spending {
		items[i] = CategorySpendingResponse{
			CategoryID:   s.CategoryID.String(),
			CategoryName: s.CategoryName,
			Total:        s.Total.StringFixed(2),
		}
	}
	return items
}

// ToTransactionStatsResponse converts a stats output to TransactionStatsResponse.
func ToTransactionStatsResponse(out *transaction.TransactionStatsOutput) TransactionStatsResponse {
	return TransactionStatsResponse{
		TotalIncome:   out.Totals.IncomeTotal.StringFixed(2),
		TotalExpenses: out.Totals.ExpenseTotal.StringFixed(2),
		Net:           out.Totals.NetTotal.StringFixed(2),
		ByCategory:    ToCategorySpendingResponses(out.ByCategory),
		PeriodStart:   out.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     out.PeriodEnd.Format("2006-01-02"),
	}
}
