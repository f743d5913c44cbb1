package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*AccountOutput
}

// ListAccountsUseCase handles account listing logic.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute retrieves the user's accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	find := uc.accountRepo.FindByUser
	if input.ActiveOnly {
		find = uc.accountRepo.FindActiveByUser
	}

	found, err := find(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*AccountOutput, 0, len(found))
	for _, account := range found {
		outputs = append(outputs, toAccountOutput(account))
	}

	return &ListAccountsOutput{Accounts: outputs}, nil
}
