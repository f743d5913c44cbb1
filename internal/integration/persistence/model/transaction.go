package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ToAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Date        time.Time       `gorm:"not null;index"`
	Status      string          `gorm:"type:varchar(10);not null;default:'completed'"`
	Description string          `gorm:"type:varchar(255)"`
	Notes       string          `gorm:"type:text"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category  *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Account   *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	ToAccount *AccountModel  `gorm:"foreignKey:ToAccountID;references:ID"`
	User      *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		AccountID:   m.AccountID,
		ToAccountID: m.ToAccountID,
		CategoryID:  m.CategoryID,
		Date:        m.Date,
		Status:      entity.TransactionStatus(m.Status),
		Description: m.Description,
		Notes:       m.Notes,
		Tags:        []string(m.Tags),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel with its Category to a
// TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount,
		AccountID:   transaction.AccountID,
		ToAccountID: transaction.ToAccountID,
		CategoryID:  transaction.CategoryID,
		Date:        transaction.Date,
		Status:      string(transaction.Status),
		Description: transaction.Description,
		Notes:       transaction.Notes,
		Tags:        pq.StringArray(transaction.Tags),
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
