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

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{db: db}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	return dbFrom(ctx, r.db).WithContext(ctx).Create(budgetModel).Error
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := dbFrom(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser retrieves all budgets for a given user with their categories.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBudgetsWithCategory(budgetModels), nil
}

// FindActiveByUser retrieves the active budgets for a given user with their
// categories.
func (r *budgetRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBudgetsWithCategory(budgetModels), nil
}

// ExistsActive checks whether an active budget already exists for the
// (user, category, period) triple.
func (r *budgetRepository) ExistsActive(ctx context.Context, userID, categoryID uuid.UUID, period entity.BudgetPeriod, excludeID uuid.UUID) (bool, error) {
	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ? AND period = ? AND is_active = ?",
			userID, categoryID, string(period), true)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindActiveWithNotifications retrieves, across all users, the active budgets
// that have notifications enabled.
func (r *budgetRepository) FindActiveWithNotifications(ctx context.Context) ([]*entity.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND notifications = ?", true, true).
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBudgetsWithCategory(budgetModels), nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(budgetModel).Error
}

// Delete soft-deletes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id).Error
}

// DeleteByCategory soft-deletes every budget referencing a category.
func (r *budgetRepository) DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&model.BudgetModel{}).Error
}

func toBudgetsWithCategory(budgetModels []model.BudgetModel) []*entity.BudgetWithCategory {
	budgets := make([]*entity.BudgetWithCategory, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntityWithCategory()
	}
	return budgets
}
