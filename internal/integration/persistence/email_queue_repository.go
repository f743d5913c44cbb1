package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	"github.com/finsight/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

// Enqueue stores a new email job in pending state.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	jobModel, err := model.EmailJobFromEntity(job)
	if err != nil {
		return err
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(jobModel).Error
}

// GetPendingJobs retrieves pending jobs whose scheduled time has passed,
// oldest first.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var jobModels []model.EmailQueueModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", string(entity.EmailStatusPending), time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&jobModels)
	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.EmailJob, 0, len(jobModels))
	for _, jm := range jobModels {
		job, err := jm.ToEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Update persists status changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	jobModel, err := model.EmailJobFromEntity(job)
	if err != nil {
		return err
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Save(jobModel).Error
}
