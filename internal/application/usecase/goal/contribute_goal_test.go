package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

type fakeGoalRepo struct {
	goals map[uuid.UUID]entity.Goal
}

func (f *fakeGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	f.goals[goal.ID] = *goal
	return nil
}

func (f *fakeGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, ok := f.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return &goal, nil
}

func (f *fakeGoalRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	return nil, nil
}

func (f *fakeGoalRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Goal, error) {
	return nil, nil
}

func (f *fakeGoalRepo) Update(ctx context.Context, goal *entity.Goal) error {
	f.goals[goal.ID] = *goal
	return nil
}

func (f *fakeGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.goals, id)
	return nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]entity.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	return &account, nil
}

func (f *fakeAccountRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.accounts, id)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type contributeFixture struct {
	goals    *fakeGoalRepo
	accounts *fakeAccountRepo
	uc       *ContributeGoalUseCase
	userID   uuid.UUID
	goal     *entity.Goal
	savings  *entity.Account
}

func newContributeFixture(t *testing.T) *contributeFixture {
	t.Helper()

	goals := &fakeGoalRepo{goals: make(map[uuid.UUID]entity.Goal)}
	accounts := &fakeAccountRepo{accounts: make(map[uuid.UUID]entity.Account)}
	userID := uuid.New()

	goal := entity.NewGoal(userID, "Emergency fund", decimal.RequireFromString("1000"), time.Now().AddDate(0, 6, 0))
	goals.goals[goal.ID] = *goal

	savings := entity.NewAccount(userID, "Savings", entity.AccountTypeSavings, decimal.RequireFromString("500"), nil, "USD")
	accounts.accounts[savings.ID] = *savings

	uc := NewContributeGoalUseCase(goals, accounts, ledger.NewBalanceAuthority(accounts), passthroughTxManager{})

	return &contributeFixture{
		goals:    goals,
		accounts: accounts,
		uc:       uc,
		userID:   userID,
		goal:     goal,
		savings:  savings,
	}
}

func TestContributeWithoutAccount(t *testing.T) {
	f := newContributeFixture(t)

	out, err := f.uc.Execute(context.Background(), ContributeGoalInput{
		UserID: f.userID,
		GoalID: f.goal.ID,
		Amount: decimal.RequireFromString("250"),
	})
	if err != nil {
		t.Fatalf("contribution failed: %v", err)
	}

	if !out.Goal.Goal.CurrentAmount.Equal(decimal.RequireFromString("250")) {
		t.Errorf("current amount = %s, want 250", out.Goal.Goal.CurrentAmount)
	}
	if out.Goal.Goal.Status != entity.GoalStatusActive {
		t.Errorf("status = %s, want active", out.Goal.Goal.Status)
	}
	if out.Goal.Progress != 25 {
		t.Errorf("progress = %v, want 25", out.Goal.Progress)
	}
}

func TestContributeFromAccountDebitsBalance(t *testing.T) {
	f := newContributeFixture(t)

	_, err := f.uc.Execute(context.Background(), ContributeGoalInput{
		UserID:    f.userID,
		GoalID:    f.goal.ID,
		Amount:    decimal.RequireFromString("200"),
		AccountID: &f.savings.ID,
	})
	if err != nil {
		t.Fatalf("contribution failed: %v", err)
	}

	account := f.accounts.accounts[f.savings.ID]
	if !account.Balance.Equal(decimal.RequireFromString("300")) {
		t.Errorf("account balance = %s, want 300", account.Balance)
	}
	goal := f.goals.goals[f.goal.ID]
	if !goal.CurrentAmount.Equal(decimal.RequireFromString("200")) {
		t.Errorf("goal amount = %s, want 200", goal.CurrentAmount)
	}
}

func TestContributeInsufficientFundsLeavesGoalUntouched(t *testing.T) {
	f := newContributeFixture(t)

	_, err := f.uc.Execute(context.Background(), ContributeGoalInput{
		UserID:    f.userID,
		GoalID:    f.goal.ID,
		Amount:    decimal.RequireFromString("600"),
		AccountID: &f.savings.ID,
	})

	var admissionErr *domainerror.AdmissionError
	if !errors.As(err, &admissionErr) {
		t.Fatalf("expected AdmissionError, got %v", err)
	}

	goal := f.goals.goals[f.goal.ID]
	if !goal.CurrentAmount.IsZero() {
		t.Errorf("goal amount = %s after rejected debit, want 0", goal.CurrentAmount)
	}
	account := f.accounts.accounts[f.savings.ID]
	if !account.Balance.Equal(decimal.RequireFromString("500")) {
		t.Errorf("account balance = %s, want 500", account.Balance)
	}
}

func TestContributeAutoCompletesGoal(t *testing.T) {
	f := newContributeFixture(t)

	out, err := f.uc.Execute(context.Background(), ContributeGoalInput{
		UserID: f.userID,
		GoalID: f.goal.ID,
		Amount: decimal.RequireFromString("1000"),
	})
	if err != nil {
		t.Fatalf("contribution failed: %v", err)
	}

	if out.Goal.Goal.Status != entity.GoalStatusCompleted {
		t.Errorf("status = %s, want completed", out.Goal.Goal.Status)
	}
	if out.Goal.Progress != 100 {
		t.Errorf("progress = %v, want 100", out.Goal.Progress)
	}

	// A completed goal accepts no further contributions.
	_, err = f.uc.Execute(context.Background(), ContributeGoalInput{
		UserID: f.userID,
		GoalID: f.goal.ID,
		Amount: decimal.RequireFromString("10"),
	})
	if !errors.Is(err, domainerror.ErrGoalNotActive) {
		t.Errorf("got %v, want ErrGoalNotActive", err)
	}
}

func TestContributeValidation(t *testing.T) {
	f := newContributeFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, ContributeGoalInput{
		UserID: f.userID,
		GoalID: f.goal.ID,
		Amount: decimal.Zero,
	})
	if !errors.Is(err, domainerror.ErrInvalidContributionAmount) {
		t.Errorf("zero amount: got %v, want ErrInvalidContributionAmount", err)
	}

	_, err = f.uc.Execute(ctx, ContributeGoalInput{
		UserID: uuid.New(),
		GoalID: f.goal.ID,
		Amount: decimal.RequireFromString("10"),
	})
	if !errors.Is(err, domainerror.ErrUnauthorizedGoalAccess) {
		t.Errorf("foreign user: got %v, want ErrUnauthorizedGoalAccess", err)
	}
}
