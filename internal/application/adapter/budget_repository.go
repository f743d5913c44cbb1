// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUser retrieves all budgets for a given user with their categories.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error)

	// FindActiveByUser retrieves the active budgets for a given user with their categories.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error)

	// ExistsActive checks whether an active budget already exists for the
	// (user, category, period) triple, excluding the given budget ID
	// (uuid.Nil to exclude none).
	ExistsActive(ctx context.Context, userID, categoryID uuid.UUID, period entity.BudgetPeriod, excludeID uuid.UUID) (bool, error)

	// FindActiveWithNotifications retrieves, across all users, the active
	// budgets that have notifications enabled. Used by the alert notifier.
	FindActiveWithNotifications(ctx context.Context) ([]*entity.BudgetWithCategory, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCategory soft-deletes every budget referencing a category.
	DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}
