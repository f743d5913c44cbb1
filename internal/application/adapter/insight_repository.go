// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// InsightRepository defines the interface for AI insight persistence. Insight
// documents are append-only: a new row is written per generation.
type InsightRepository interface {
	// Create stores a newly generated insight document.
	Create(ctx context.Context, insight *entity.AIInsight) error

	// FindLatestByUser retrieves the most recently generated insight for a
	// user, expired or not. Returns ErrInsightNotFound when none exists.
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.AIInsight, error)
}
