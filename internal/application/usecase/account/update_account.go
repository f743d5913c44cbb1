package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account updates. Nil pointer
// fields are left unchanged. Balance and type are immutable here: the
// balance only moves through the ledger, and changing the type would
// re-interpret the sign of the existing balance.
type UpdateAccountInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Name        *string
	CreditLimit *decimal.Decimal
	IsActive    *bool
}

// UpdateAccountOutput represents the output of account updates.
type UpdateAccountOutput struct {
	Account *AccountOutput
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
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

	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > MaxAccountNameLength {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeMissingAccountFields,
				"account name is required and must not exceed 100 characters",
				nil,
			)
		}
		account.Name = *input.Name
	}

	if input.CreditLimit != nil {
		if account.Type != entity.AccountTypeCredit {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeCreditLimitOnNonCredit,
				"credit limit only applies to credit accounts",
				domainerror.ErrCreditLimitOnNonCredit,
			)
		}
		if input.CreditLimit.IsNegative() {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeMissingAccountFields,
				"credit limit must not be negative",
				nil,
			)
		}
		account.CreditLimit = input.CreditLimit
	}

	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return &UpdateAccountOutput{Account: toAccountOutput(account)}, nil
}
