package goal

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// ContributeGoalInput represents the input for a goal contribution. When
// AccountID is set, the amount is debited from that account; otherwise the
// contribution only tracks money held elsewhere.
type ContributeGoalInput struct {
	UserID    uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	AccountID *uuid.UUID
}

// ContributeGoalOutput represents the output of a goal contribution.
type ContributeGoalOutput struct {
	Goal *GoalOutput
}

// ContributeGoalUseCase handles goal contributions. A funded contribution is
// atomic: the account debit and the goal update commit together, so a
// rejected debit leaves the goal untouched.
type ContributeGoalUseCase struct {
	goalRepo    adapter.GoalRepository
	accountRepo adapter.AccountRepository
	authority   *ledger.BalanceAuthority
	txManager   adapter.TransactionManager
}

// NewContributeGoalUseCase creates a new ContributeGoalUseCase instance.
func NewContributeGoalUseCase(
	goalRepo adapter.GoalRepository,
	accountRepo adapter.AccountRepository,
	authority *ledger.BalanceAuthority,
	txManager adapter.TransactionManager,
) *ContributeGoalUseCase {
	return &ContributeGoalUseCase{
		goalRepo:    goalRepo,
		accountRepo: accountRepo,
		authority:   authority,
		txManager:   txManager,
	}
}

// Execute performs the contribution.
func (uc *ContributeGoalUseCase) Execute(ctx context.Context, input ContributeGoalInput) (*ContributeGoalOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be positive",
			domainerror.ErrInvalidContributionAmount,
		)
	}

	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if goal.Status != entity.GoalStatusActive {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotActive,
			"goal is not active",
			domainerror.ErrGoalNotActive,
		)
	}

	var account *entity.Account
	if input.AccountID != nil {
		account, err = uc.accountRepo.FindByID(ctx, *input.AccountID)
		if err != nil {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		if account.UserID != input.UserID {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		if !account.IsActive {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountInactive,
				"account is inactive",
				domainerror.ErrAccountInactive,
			)
		}
	}

	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		if account != nil {
			if err := uc.authority.Debit(ctx, account, input.Amount); err != nil {
				return err
			}
		}
		goal.ApplyContribution(input.Amount)
		return uc.goalRepo.Update(ctx, goal)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("goal contribution applied",
		"goal_id", goal.ID,
		"user_id", goal.UserID,
		"amount", input.Amount,
		"status", goal.Status)

	return &ContributeGoalOutput{Goal: toGoalOutput(goal)}, nil
}
