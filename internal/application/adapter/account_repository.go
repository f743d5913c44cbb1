// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a given user, active first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// FindActiveByUser retrieves the active accounts for a given user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// Update persists changes to an existing account, including its balance.
	Update(ctx context.Context, account *entity.Account) error

	// Delete physically removes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
