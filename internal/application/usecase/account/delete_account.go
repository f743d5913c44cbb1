package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountOutput represents the output of account deletion. Deactivated
// is true when the account was referenced by transactions and was disabled
// instead of removed, preserving the ledger history.
type DeleteAccountOutput struct {
	Deactivated bool
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute deletes an account. Accounts with transaction history are
// deactivated; accounts never used are physically removed.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}

	if account.UserID != input.UserID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"account does not belong to user",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}

	count, err := uc.transactionRepo.CountByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		account.IsActive = false
		account.UpdatedAt = time.Now().UTC()
		if err := uc.accountRepo.Update(ctx, account); err != nil {
			return nil, err
		}

		slog.Info("account deactivated", "account_id", account.ID, "transactions", count)
		return &DeleteAccountOutput{Deactivated: true}, nil
	}

	if err := uc.accountRepo.Delete(ctx, account.ID); err != nil {
		return nil, err
	}

	slog.Info("account deleted", "account_id", account.ID)
	return &DeleteAccountOutput{}, nil
}
