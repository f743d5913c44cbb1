package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period        string          `gorm:"type:varchar(10);not null"`
	Threshold     int             `gorm:"not null;default:80"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	Notifications bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:            m.ID,
		UserID:        m.UserID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Period:        entity.BudgetPeriod(m.Period),
		Threshold:     m.Threshold,
		IsActive:      m.IsActive,
		Notifications: m.Notifications,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}

// ToEntityWithCategory converts a BudgetModel with its Category preloaded to
// a BudgetWithCategory entity.
func (m *BudgetModel) ToEntityWithCategory() *entity.BudgetWithCategory {
	result := &entity.BudgetWithCategory{
		Budget: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &BudgetModel{
		ID:            budget.ID,
		UserID:        budget.UserID,
		CategoryID:    budget.CategoryID,
		Amount:        budget.Amount,
		Period:        string(budget.Period),
		Threshold:     budget.Threshold,
		IsActive:      budget.IsActive,
		Notifications: budget.Notifications,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
		DeletedAt:     deletedAt,
	}
}
