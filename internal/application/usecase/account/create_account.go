package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID      uuid.UUID
	Name        string
	Type        entity.AccountType
	Balance     decimal.Decimal // Opening balance
	CreditLimit *decimal.Decimal
	Currency    string
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{accountRepo: accountRepo}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if input.Name == "" || len(input.Name) > MaxAccountNameLength {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountFields,
			"account name is required and must not exceed 100 characters",
			nil,
		)
	}

	if !entity.ValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be one of 'checking', 'savings', 'credit', 'cash', 'investment'",
			domainerror.ErrInvalidAccountType,
		)
	}

	if input.CreditLimit != nil {
		if input.Type != entity.AccountTypeCredit {
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
	}

	account := entity.NewAccount(input.UserID, input.Name, input.Type, input.Balance, input.CreditLimit, input.Currency)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	slog.Info("account created",
		"account_id", account.ID,
		"user_id", account.UserID,
		"type", account.Type)

	return &CreateAccountOutput{Account: toAccountOutput(account)}, nil
}
