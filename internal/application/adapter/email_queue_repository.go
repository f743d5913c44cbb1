// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finsight/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for the email delivery queue.
type EmailQueueRepository interface {
	// Enqueue stores a new email job in pending state.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves pending jobs whose scheduled time has passed,
	// oldest first, at most limit rows.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists status changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error
}
