package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return dbFrom(ctx, r.db).WithContext(ctx).Create(transactionModel).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := dbFrom(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// applyFilter narrows a query to the filter criteria.
func applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ? OR to_account_id = ?", filter.AccountID, filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", pattern)
	}

	return query
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := applyFilter(dbFrom(ctx, r.db).WithContext(ctx).Model(&model.TransactionModel{}), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindRecent retrieves the most recent transactions for a user.
func (r *transactionRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithCategory()
	}
	return transactions, nil
}

// FindByCategory retrieves all transactions referencing a category for a user.
func (r *transactionRepository) FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// GetTotals calculates income/expense totals based on filter criteria.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	base := applyFilter(dbFrom(ctx, r.db).WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Where("status = ?", string(entity.TransactionStatusCompleted))

	var income, expense struct {
		Total decimal.Decimal
	}

	if err := base.Session(&gorm.Session{}).
		Where("type = ?", string(entity.TransactionTypeIncome)).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&income).Error; err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&expense).Error; err != nil {
		return nil, err
	}

	return &entity.TransactionTotals{
		IncomeTotal:  income.Total,
		ExpenseTotal: expense.Total,
		NetTotal:     income.Total.Sub(expense.Total),
	}, nil
}

// SumCompletedExpenses sums completed expense amounts for a user and category
// inside [start, end].
func (r *transactionRepository) SumCompletedExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("type = ? AND status = ?", string(entity.TransactionTypeExpense), string(entity.TransactionStatusCompleted)).
		Where("date >= ? AND date <= ?", start, end).
		Select("COALESCE(SUM(amount), 0) as total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// GetCategorySpending returns per-category expense totals inside [start, end],
// largest first.
func (r *transactionRepository) GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]entity.CategorySpending, error) {
	var rows []struct {
		CategoryID   uuid.UUID       `gorm:"column:category_id"`
		CategoryName string          `gorm:"column:category_name"`
		Total        decimal.Decimal `gorm:"column:total"`
	}

	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&model.TransactionModel{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.type = ? AND transactions.status = ?", string(entity.TransactionTypeExpense), string(entity.TransactionStatusCompleted)).
		Where("transactions.date >= ? AND transactions.date <= ?", start, end).
		Where("transactions.deleted_at IS NULL").
		Group("transactions.category_id, categories.name").
		Select("transactions.category_id as category_id, categories.name as category_name, SUM(transactions.amount) as total").
		Order("total DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	spending := make([]entity.CategorySpending, len(rows))
	for i, row := range rows {
		spending[i] = entity.CategorySpending{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total,
		}
	}
	return spending, nil
}

// GetMonthlyTotals returns income/expense totals per calendar month for the
// trailing number of months, oldest first. Months are aggregated in Go
// rather than SQL so the query stays portable across postgres and sqlite.
func (r *transactionRepository) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]entity.MonthlyTotals, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	var transactionModels []model.TransactionModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, start).
		Where("type IN ? AND status = ?",
			[]string{string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)},
			string(entity.TransactionStatusCompleted)).
		Find(&transactionModels).Error
	if err != nil {
		return nil, err
	}

	totals := make([]entity.MonthlyTotals, months)
	for i := range totals {
		month := start.AddDate(0, i, 0)
		totals[i] = entity.MonthlyTotals{
			Year:    month.Year(),
			Month:   month.Month(),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, tm := range transactionModels {
		idx := (tm.Date.Year()-start.Year())*12 + int(tm.Date.Month()) - int(start.Month())
		if idx < 0 || idx >= months {
			continue
		}
		if tm.Type == string(entity.TransactionTypeIncome) {
			totals[idx].Income = totals[idx].Income.Add(tm.Amount)
		} else {
			totals[idx].Expense = totals[idx].Expense.Add(tm.Amount)
		}
	}

	return totals, nil
}

// CountByAccount counts transactions referencing an account as source or
// destination.
func (r *transactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Model(&model.TransactionModel{}).
		Where("account_id = ? OR to_account_id = ?", accountID, accountID).
		Count(&count).Error
	return count, err
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	return dbFrom(ctx, r.db).WithContext(ctx).Save(transactionModel).Error
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id).Error
}
