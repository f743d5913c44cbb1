// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	AccountID   *uuid.UUID
	Type        *entity.TransactionType
	Search      string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindRecent retrieves the most recent transactions for a user.
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error)

	// FindByCategory retrieves all transactions referencing a category for a user.
	FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error)

	// GetTotals calculates income/expense totals based on filter criteria.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// SumCompletedExpenses sums completed expense amounts for a user and
	// category inside [start, end]. Used for budget progress.
	SumCompletedExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// GetCategorySpending returns per-category expense totals inside [start, end],
	// largest first, at most limit rows.
	GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]entity.CategorySpending, error)

	// GetMonthlyTotals returns income/expense totals per calendar month for the
	// trailing number of months, oldest first.
	GetMonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]entity.MonthlyTotals, error)

	// CountByAccount counts transactions referencing an account as source or
	// destination. Used to decide between soft-disable and physical delete.
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
