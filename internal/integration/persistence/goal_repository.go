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

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{db: db}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	return dbFrom(ctx, r.db).WithContext(ctx).Create(goalModel).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := dbFrom(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves all goals for a given user ordered by nearest deadline.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toGoals(goalModels), nil
}

// FindActiveByUser retrieves the active goals for a given user ordered by
// nearest deadline, at most limit rows (0 for no limit).
func (r *goalRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Goal, error) {
	query := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.GoalStatusActive)).
		Order("deadline ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var goalModels []model.GoalModel
	if err := query.Find(&goalModels).Error; err != nil {
		return nil, err
	}
	return toGoals(goalModels), nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(goalModel).Error
}

// Delete soft-deletes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id).Error
}

func toGoals(goalModels []model.GoalModel) []*entity.Goal {
	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals
}
