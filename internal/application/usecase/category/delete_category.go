package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryOutput reports what the cascade removed.
type DeleteCategoryOutput struct {
	TransactionsDeleted int
}

// DeleteCategoryUseCase handles category deletion. Deleting a category
// cascades: every transaction referencing it goes through the normal
// transaction deletion path, so each one reverses its balance effect, and
// budgets on the category are removed. The whole cascade commits atomically.
type DeleteCategoryUseCase struct {
	categoryRepo      adapter.CategoryRepository
	transactionRepo   adapter.TransactionRepository
	budgetRepo        adapter.BudgetRepository
	deleteTransaction *transaction.DeleteTransactionUseCase
	txManager         adapter.TransactionManager
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	deleteTransaction *transaction.DeleteTransactionUseCase,
	txManager adapter.TransactionManager,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:      categoryRepo,
		transactionRepo:   transactionRepo,
		budgetRepo:        budgetRepo,
		deleteTransaction: deleteTransaction,
		txManager:         txManager,
	}
}

// Execute performs the category deletion and its cascade.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"category does not belong to user",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	var deleted int
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		txns, err := uc.transactionRepo.FindByCategory(ctx, input.UserID, category.ID)
		if err != nil {
			return err
		}

		// Each record goes through the regular deletion path inside the
		// enclosing transaction, reversing balances one by one.
		for _, txn := range txns {
			if err := uc.deleteTransaction.Execute(ctx, transaction.DeleteTransactionInput{
				UserID:        input.UserID,
				TransactionID: txn.ID,
			}); err != nil {
				return err
			}
			deleted++
		}

		if err := uc.budgetRepo.DeleteByCategory(ctx, input.UserID, category.ID); err != nil {
			return err
		}

		return uc.categoryRepo.Delete(ctx, category.ID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("category deleted",
		"category_id", category.ID,
		"user_id", input.UserID,
		"transactions_deleted", deleted)

	return &DeleteCategoryOutput{TransactionsDeleted: deleted}, nil
}
