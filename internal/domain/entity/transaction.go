// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionStatus represents the settlement status of a transaction. Only
// completed transactions count toward budget progress and statistics.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
)

// Transaction represents a single cash movement. Amount is always positive;
// the transaction type determines the direction of the balance effect.
//
// Exactly one of CategoryID and ToAccountID is set: income and expense
// transactions carry a category, transfers carry a destination account.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID // Destination account, transfers only
	CategoryID  *uuid.UUID // Income and expense only
	Date        time.Time
	Status      TransactionStatus
	Description string
	Notes       string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity with completed status.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	accountID uuid.UUID,
	toAccountID *uuid.UUID,
	categoryID *uuid.UUID,
	date time.Time,
	description string,
	notes string,
	tags []string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		AccountID:   accountID,
		ToAccountID: toAccountID,
		CategoryID:  categoryID,
		Date:        date,
		Status:      TransactionStatusCompleted,
		Description: description,
		Notes:       notes,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTransfer reports whether the transaction moves money between two accounts.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// ValidTransactionType reports whether the given type is supported.
func ValidTransactionType(transactionType TransactionType) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionWithCategory pairs a transaction with its associated category,
// when one is set.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionListResult represents one page of a transaction listing.
type TransactionListResult struct {
	Transactions []*TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated income/expense totals.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// CategorySpending represents the spending total for a single category over
// some date range.
type CategorySpending struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// MonthlyTotals represents income/expense totals for one calendar month.
type MonthlyTotals struct {
	Year    int
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// SavingsRate returns income minus expenses as a percentage of income, or
// zero when the month had no income.
func (m MonthlyTotals) SavingsRate() float64 {
	if m.Income.IsZero() {
		return 0
	}
	net := m.Income.Sub(m.Expense)
	rate, _ := net.Div(m.Income).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}
