package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion. Deleting a
// transaction reverses its exact balance effect on every account it touched;
// the reversal is never admission-checked, so deletion always restores the
// pre-transaction state.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	authority       *ledger.BalanceAuthority
	txManager       adapter.TransactionManager
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	authority *ledger.BalanceAuthority,
	txManager adapter.TransactionManager,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		authority:       authority,
		txManager:       txManager,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if txn.UserID != input.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"transaction does not belong to user",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		account, err := uc.accountRepo.FindByID(ctx, txn.AccountID)
		if err != nil {
			return err
		}
		if err := uc.authority.ApplyReversal(ctx, account, sourceDelta(txn).Neg()); err != nil {
			return err
		}

		if txn.ToAccountID != nil {
			toAccount, err := uc.accountRepo.FindByID(ctx, *txn.ToAccountID)
			if err != nil {
				return err
			}
			if err := uc.authority.ApplyReversal(ctx, toAccount, txn.Amount.Neg()); err != nil {
				return err
			}
		}

		return uc.transactionRepo.Delete(ctx, txn.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("transaction deleted",
		"transaction_id", txn.ID,
		"user_id", txn.UserID,
		"type", txn.Type)

	return nil
}
