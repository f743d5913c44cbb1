package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// AIInsightModel represents the ai_insights table in the database. Rows are
// append-only; the newest row per user is the serving cache.
type AIInsightModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Items       string    `gorm:"type:text;not null"` // JSON-encoded insight items
	Context     string    `gorm:"type:text"`
	GeneratedAt time.Time `gorm:"not null;index"`
	ValidUntil  time.Time `gorm:"not null"`
	IsFallback  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the AIInsightModel.
func (AIInsightModel) TableName() string {
	return "ai_insights"
}

// ToEntity converts an AIInsightModel to a domain AIInsight entity.
func (m *AIInsightModel) ToEntity() (*entity.AIInsight, error) {
	var items []entity.InsightItem
	if err := json.Unmarshal([]byte(m.Items), &items); err != nil {
		return nil, err
	}

	return &entity.AIInsight{
		ID:          m.ID,
		UserID:      m.UserID,
		Items:       items,
		Context:     m.Context,
		GeneratedAt: m.GeneratedAt,
		ValidUntil:  m.ValidUntil,
		IsFallback:  m.IsFallback,
		CreatedAt:   m.CreatedAt,
	}, nil
}

// AIInsightFromEntity creates an AIInsightModel from a domain AIInsight entity.
func AIInsightFromEntity(insight *entity.AIInsight) (*AIInsightModel, error) {
	items, err := json.Marshal(insight.Items)
	if err != nil {
		return nil, err
	}

	return &AIInsightModel{
		ID:          insight.ID,
		UserID:      insight.UserID,
		Items:       string(items),
		Context:     insight.Context,
		GeneratedAt: insight.GeneratedAt,
		ValidUntil:  insight.ValidUntil,
		IsFallback:  insight.IsFallback,
		CreatedAt:   insight.CreatedAt,
	}, nil
}
