package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	AccountID   uuid.UUID
	ToAccountID *uuid.UUID // Transfers only
	CategoryID  *uuid.UUID // Income and expense only
	Date        time.Time
	Status      entity.TransactionStatus // Defaults to completed
	Description string
	Notes       string
	Tags        []string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation. The record write and
// the balance effect commit in one storage transaction; a rejected admission
// leaves no trace.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	authority       *ledger.BalanceAuthority
	txManager       adapter.TransactionManager
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	authority *ledger.BalanceAuthority,
	txManager adapter.TransactionManager,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		authority:       authority,
		txManager:       txManager,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	account, err := uc.loadOwnedAccount(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	var toAccount *entity.Account
	var category *entity.Category

	if input.Type == entity.TransactionTypeTransfer {
		toAccount, err = uc.loadOwnedAccount(ctx, input.UserID, *input.ToAccountID)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = uc.loadMatchingCategory(ctx, input.UserID, *input.CategoryID, input.Type)
		if err != nil {
			return nil, err
		}
	}

	txn := entity.NewTransaction(
		input.UserID,
		input.Type,
		input.Amount,
		input.AccountID,
		input.ToAccountID,
		input.CategoryID,
		input.Date,
		input.Description,
		input.Notes,
		input.Tags,
	)
	if input.Status == entity.TransactionStatusPending {
		txn.Status = entity.TransactionStatusPending
	}

	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		// Source leg first: a rejected admission aborts before anything
		// is written.
		if err := uc.authority.ApplyDelta(ctx, account, sourceDelta(txn)); err != nil {
			return err
		}
		if toAccount != nil {
			if err := uc.authority.ApplyDelta(ctx, toAccount, txn.Amount); err != nil {
				return err
			}
		}
		return uc.transactionRepo.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transaction created",
		"transaction_id", txn.ID,
		"user_id", txn.UserID,
		"type", txn.Type,
		"amount", txn.Amount)

	return &CreateTransactionOutput{Transaction: toTransactionOutput(txn, category)}, nil
}

// sourceDelta returns the signed balance effect on the source account.
func sourceDelta(txn *entity.Transaction) decimal.Decimal {
	if txn.Type == entity.TransactionTypeIncome {
		return txn.Amount
	}
	return txn.Amount.Neg()
}

func (uc *CreateTransactionUseCase) validate(input CreateTransactionInput) error {
	if !entity.ValidTransactionType(input.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if len(input.Notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	if input.Type == entity.TransactionTypeTransfer {
		if input.CategoryID != nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryNotAllowed,
				"transfers do not carry a category",
				domainerror.ErrCategoryNotAllowed,
			)
		}
		if input.ToAccountID == nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeDestinationRequired,
				"destination account is required for transfers",
				domainerror.ErrDestinationRequired,
			)
		}
		if *input.ToAccountID == input.AccountID {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeSameTransferAccounts,
				"cannot transfer to the same account",
				domainerror.ErrSameTransferAccounts,
			)
		}
		return nil
	}

	if input.CategoryID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryRequired,
			"category is required for income and expense transactions",
			domainerror.ErrCategoryRequired,
		)
	}
	if input.ToAccountID != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDestinationRequired,
			"destination account only applies to transfers",
			domainerror.ErrDestinationRequired,
		)
	}

	return nil
}

func (uc *CreateTransactionUseCase) loadOwnedAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := uc.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	if account.UserID != userID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"account does not belong to user",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}
	if !account.IsActive {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountInactive,
			"account is inactive",
			domainerror.ErrAccountInactive,
		)
	}
	return account, nil
}

func (uc *CreateTransactionUseCase) loadMatchingCategory(ctx context.Context, userID, categoryID uuid.UUID, txnType entity.TransactionType) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if category.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	matches := (txnType == entity.TransactionTypeIncome && category.Type == entity.CategoryTypeIncome) ||
		(txnType == entity.TransactionTypeExpense && category.Type == entity.CategoryTypeExpense)
	if !matches {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("category type %q does not match transaction type %q", category.Type, txnType),
			domainerror.ErrCategoryTypeMismatch,
		)
	}

	return category, nil
}
