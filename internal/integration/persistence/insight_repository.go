package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/persistence/model"
)

// insightRepository implements the adapter.InsightRepository interface.
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository instance.
func NewInsightRepository(db *gorm.DB) adapter.InsightRepository {
	return &insightRepository{db: db}
}

// Create stores a newly generated insight document.
func (r *insightRepository) Create(ctx context.Context, insight *entity.AIInsight) error {
	insightModel, err := model.AIInsightFromEntity(insight)
	if err != nil {
		return err
	}
	return dbFrom(ctx, r.db).WithContext(ctx).Create(insightModel).Error
}

// FindLatestByUser retrieves the most recently generated insight for a user.
func (r *insightRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.AIInsight, error) {
	var insightModel model.AIInsightModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		First(&insightModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInsightNotFound
		}
		return nil, result.Error
	}
	return insightModel.ToEntity()
}
