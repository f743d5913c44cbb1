package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// BalanceAuthority is the only component allowed to mutate account
// balances. Every transaction lifecycle operation funnels its balance
// effect through here so admission control cannot be bypassed.
type BalanceAuthority struct {
	accountRepo adapter.AccountRepository
}

func NewBalanceAuthority(accountRepo adapter.AccountRepository) *BalanceAuthority {
	return &BalanceAuthority{accountRepo: accountRepo}
}

// ApplyDelta applies a signed balance change to the account. For credit
// accounts a negative delta is admitted only while the available credit
// (creditLimit + balance) covers it.
func (a *BalanceAuthority) ApplyDelta(ctx context.Context, account *entity.Account, delta decimal.Decimal) error {
	if delta.IsNegative() && account.IsCredit() && account.CreditLimit != nil {
		available := account.CreditLimit.Add(account.Balance)
		if available.Add(delta).IsNegative() {
			return domainerror.NewAdmissionError(domainerror.ErrCodeCreditLimitExceeded, available, delta.Neg())
		}
	}

	account.Balance = account.Balance.Add(delta)
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return err
	}
	return nil
}

// ApplyReversal undoes a previously admitted delta. Reversals are never
// subject to admission control: deleting a transaction must always
// restore the pre-transaction state, even if the account has since
// drifted past its limit.
func (a *BalanceAuthority) ApplyReversal(ctx context.Context, account *entity.Account, delta decimal.Decimal) error {
	account.Balance = account.Balance.Add(delta)
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return err
	}
	return nil
}

// Debit withdraws amount from the account. Credit accounts go through
// admission control; for every other type the balance must cover the
// full amount.
func (a *BalanceAuthority) Debit(ctx context.Context, account *entity.Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.ErrInvalidContributionAmount
	}

	if !account.IsCredit() && account.Balance.LessThan(amount) {
		return domainerror.NewAdmissionError(domainerror.ErrCodeInsufficientBalance, account.Balance, amount)
	}

	return a.ApplyDelta(ctx, account, amount.Neg())
}
