// Package account contains account-related use cases.
package account

import (
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

// AccountOutput represents an account returned by use cases.
type AccountOutput struct {
	Account         *entity.Account
	AvailableCredit *decimal.Decimal // Set for credit accounts with a limit
}

func toAccountOutput(account *entity.Account) *AccountOutput {
	out := &AccountOutput{Account: account}
	if available, ok := account.AvailableCredit(); ok {
		out.AvailableCredit = &available
	}
	return out
}
