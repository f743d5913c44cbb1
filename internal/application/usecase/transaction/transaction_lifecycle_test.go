package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/ledger"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// memStore is an in-memory backing store shared by the fake repositories.
// The fake transaction manager snapshots it before each unit of work and
// restores it on failure, mirroring a rolled-back storage transaction.
type memStore struct {
	accounts   map[uuid.UUID]entity.Account
	txns       map[uuid.UUID]entity.Transaction
	categories map[uuid.UUID]entity.Category

	failUpdateFor map[uuid.UUID]error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      make(map[uuid.UUID]entity.Account),
		txns:          make(map[uuid.UUID]entity.Transaction),
		categories:    make(map[uuid.UUID]entity.Category),
		failUpdateFor: make(map[uuid.UUID]error),
	}
}

func (s *memStore) snapshot() (map[uuid.UUID]entity.Account, map[uuid.UUID]entity.Transaction) {
	accounts := make(map[uuid.UUID]entity.Account, len(s.accounts))
	for k, v := range s.accounts {
		accounts[k] = v
	}
	txns := make(map[uuid.UUID]entity.Transaction, len(s.txns))
	for k, v := range s.txns {
		txns[k] = v
	}
	return accounts, txns
}

type fakeAccountRepo struct{ store *memStore }

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	f.store.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := f.store.accounts[id]
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
	if err, ok := f.store.failUpdateFor[account.ID]; ok {
		return err
	}
	f.store.accounts[account.ID] = *account
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.store.accounts, id)
	return nil
}

type fakeTransactionRepo struct{ store *memStore }

func (f *fakeTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	f.store.txns[txn.ID] = *txn
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := f.store.txns[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return &txn, nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (f *fakeTransactionRepo) SumCompletedExpenses(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeTransactionRepo) GetCategorySpending(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]entity.CategorySpending, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) GetMonthlyTotals(ctx context.Context, userID uuid.UUID, months int) ([]entity.MonthlyTotals, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	for _, txn := range f.store.txns {
		if txn.AccountID == accountID || (txn.ToAccountID != nil && *txn.ToAccountID == accountID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeTransactionRepo) Update(ctx context.Context, txn *entity.Transaction) error {
	f.store.txns[txn.ID] = *txn
	return nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.store.txns, id)
	return nil
}

type fakeCategoryRepo struct{ store *memStore }

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	f.store.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := f.store.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &category, nil
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID, excludeID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	f.store.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.store.categories, id)
	return nil
}

// fakeTxManager restores the store snapshot when the unit of work fails.
type fakeTxManager struct{ store *memStore }

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	accounts, txns := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.accounts = accounts
		f.store.txns = txns
		return err
	}
	return nil
}

type lifecycleFixture struct {
	store     *memStore
	create    *CreateTransactionUseCase
	delete    *DeleteTransactionUseCase
	userID    uuid.UUID
	checking  *entity.Account
	credit    *entity.Account
	groceries *entity.Category
	salary    *entity.Category
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	store := newMemStore()
	accountRepo := &fakeAccountRepo{store: store}
	transactionRepo := &fakeTransactionRepo{store: store}
	categoryRepo := &fakeCategoryRepo{store: store}
	authority := ledger.NewBalanceAuthority(accountRepo)
	txManager := &fakeTxManager{store: store}

	userID := uuid.New()

	checking := entity.NewAccount(userID, "Checking", entity.AccountTypeChecking, decimal.RequireFromString("1000"), nil, "USD")
	limit := decimal.RequireFromString("500")
	credit := entity.NewAccount(userID, "Card", entity.AccountTypeCredit, decimal.RequireFromString("-450"), &limit, "USD")
	store.accounts[checking.ID] = *checking
	store.accounts[credit.ID] = *credit

	groceries := entity.NewCategory(userID, "Groceries", entity.CategoryTypeExpense, "", "")
	salary := entity.NewCategory(userID, "Salary", entity.CategoryTypeIncome, "", "")
	store.categories[groceries.ID] = *groceries
	store.categories[salary.ID] = *salary

	return &lifecycleFixture{
		store:     store,
		create:    NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, authority, txManager),
		delete:    NewDeleteTransactionUseCase(transactionRepo, accountRepo, authority, txManager),
		userID:    userID,
		checking:  checking,
		credit:    credit,
		groceries: groceries,
		salary:    salary,
	}
}

func (f *lifecycleFixture) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	account, ok := f.store.accounts[id]
	if !ok {
		t.Fatalf("account %s vanished", id)
	}
	return account.Balance
}

func TestCreateIncomeAndExpense(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeIncome,
		Amount:      decimal.RequireFromString("2500"),
		AccountID:   f.checking.ID,
		CategoryID:  &f.salary.ID,
		Date:        time.Now(),
		Description: "Paycheck",
	})
	if err != nil {
		t.Fatalf("income creation failed: %v", err)
	}
	if got := f.balance(t, f.checking.ID); !got.Equal(decimal.RequireFromString("3500")) {
		t.Errorf("balance after income = %s, want 3500", got)
	}

	_, err = f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("120.50"),
		AccountID:   f.checking.ID,
		CategoryID:  &f.groceries.ID,
		Date:        time.Now(),
		Description: "Weekly shop",
	})
	if err != nil {
		t.Fatalf("expense creation failed: %v", err)
	}
	if got := f.balance(t, f.checking.ID); !got.Equal(decimal.RequireFromString("3379.50")) {
		t.Errorf("balance after expense = %s, want 3379.50", got)
	}
	if len(f.store.txns) != 2 {
		t.Errorf("transaction count = %d, want 2", len(f.store.txns))
	}
}

func TestCreateExpenseRejectedOverCreditLimit(t *testing.T) {
	f := newLifecycleFixture(t)

	// Card has 500 limit with 450 debt: 50 available.
	_, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("50.01"),
		AccountID:   f.credit.ID,
		CategoryID:  &f.groceries.ID,
		Date:        time.Now(),
		Description: "Too much",
	})

	var admissionErr *domainerror.AdmissionError
	if !errors.As(err, &admissionErr) {
		t.Fatalf("expected AdmissionError, got %v", err)
	}
	if got := f.balance(t, f.credit.ID); !got.Equal(decimal.RequireFromString("-450")) {
		t.Errorf("balance after rejection = %s, want -450", got)
	}
	if len(f.store.txns) != 0 {
		t.Errorf("rejected transaction was persisted")
	}
}

func TestCreateTransferMovesBothLegs(t *testing.T) {
	f := newLifecycleFixture(t)

	// Paying down the card from checking.
	_, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeTransfer,
		Amount:      decimal.RequireFromString("300"),
		AccountID:   f.checking.ID,
		ToAccountID: &f.credit.ID,
		Date:        time.Now(),
		Description: "Card payment",
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if got := f.balance(t, f.checking.ID); !got.Equal(decimal.RequireFromString("700")) {
		t.Errorf("source balance = %s, want 700", got)
	}
	if got := f.balance(t, f.credit.ID); !got.Equal(decimal.RequireFromString("-150")) {
		t.Errorf("destination balance = %s, want -150", got)
	}
}

func TestCreateTransferRollsBackOnSecondLegFailure(t *testing.T) {
	f := newLifecycleFixture(t)
	f.store.failUpdateFor[f.credit.ID] = errors.New("storage unavailable")

	_, err := f.create.Execute(context.Background(), CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeTransfer,
		Amount:      decimal.RequireFromString("300"),
		AccountID:   f.checking.ID,
		ToAccountID: &f.credit.ID,
		Date:        time.Now(),
		Description: "Card payment",
	})
	if err == nil {
		t.Fatal("expected failure")
	}

	if got := f.balance(t, f.checking.ID); !got.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("source balance after rollback = %s, want 1000", got)
	}
	if len(f.store.txns) != 0 {
		t.Errorf("transaction persisted despite rollback")
	}
}

func TestCreateTransferValidation(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeTransfer,
		Amount:      decimal.RequireFromString("10"),
		AccountID:   f.checking.ID,
		ToAccountID: &f.checking.ID,
		Date:        time.Now(),
	})
	if !errors.Is(err, domainerror.ErrSameTransferAccounts) {
		t.Errorf("same-account transfer: got %v, want ErrSameTransferAccounts", err)
	}

	_, err = f.create.Execute(ctx, CreateTransactionInput{
		UserID:    f.userID,
		Type:      entity.TransactionTypeTransfer,
		Amount:    decimal.RequireFromString("10"),
		AccountID: f.checking.ID,
		Date:      time.Now(),
	})
	if !errors.Is(err, domainerror.ErrDestinationRequired) {
		t.Errorf("missing destination: got %v, want ErrDestinationRequired", err)
	}

	_, err = f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeTransfer,
		Amount:      decimal.RequireFromString("10"),
		AccountID:   f.checking.ID,
		ToAccountID: &f.credit.ID,
		CategoryID:  &f.groceries.ID,
		Date:        time.Now(),
	})
	if !errors.Is(err, domainerror.ErrCategoryNotAllowed) {
		t.Errorf("transfer with category: got %v, want ErrCategoryNotAllowed", err)
	}

	_, err = f.create.Execute(ctx, CreateTransactionInput{
		UserID:    f.userID,
		Type:      entity.TransactionTypeExpense,
		Amount:    decimal.RequireFromString("10"),
		AccountID: f.checking.ID,
		Date:      time.Now(),
	})
	if !errors.Is(err, domainerror.ErrCategoryRequired) {
		t.Errorf("expense without category: got %v, want ErrCategoryRequired", err)
	}

	_, err = f.create.Execute(ctx, CreateTransactionInput{
		UserID:     f.userID,
		Type:       entity.TransactionTypeIncome,
		Amount:     decimal.RequireFromString("10"),
		AccountID:  f.checking.ID,
		CategoryID: &f.groceries.ID,
		Date:       time.Now(),
	})
	if !errors.Is(err, domainerror.ErrCategoryTypeMismatch) {
		t.Errorf("income with expense category: got %v, want ErrCategoryTypeMismatch", err)
	}
}

func TestDeleteReversesExactEffect(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	out, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeExpense,
		Amount:      decimal.RequireFromString("40"),
		AccountID:   f.credit.ID,
		CategoryID:  &f.groceries.ID,
		Date:        time.Now(),
		Description: "Snacks",
	})
	if err != nil {
		t.Fatalf("expense creation failed: %v", err)
	}

	// Shrink the limit so the account now sits past it. The reversal must
	// still go through.
	account := f.store.accounts[f.credit.ID]
	tight := decimal.RequireFromString("100")
	account.CreditLimit = &tight
	f.store.accounts[f.credit.ID] = account

	err = f.delete.Execute(ctx, DeleteTransactionInput{
		UserID:        f.userID,
		TransactionID: out.Transaction.Transaction.ID,
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got := f.balance(t, f.credit.ID); !got.Equal(decimal.RequireFromString("-450")) {
		t.Errorf("balance after delete = %s, want -450", got)
	}
	if len(f.store.txns) != 0 {
		t.Errorf("transaction still present after delete")
	}
}

func TestDeleteTransferReversesBothLegs(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	out, err := f.create.Execute(ctx, CreateTransactionInput{
		UserID:      f.userID,
		Type:        entity.TransactionTypeTransfer,
		Amount:      decimal.RequireFromString("200"),
		AccountID:   f.checking.ID,
		ToAccountID: &f.credit.ID,
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	err = f.delete.Execute(ctx, DeleteTransactionInput{
		UserID:        f.userID,
		TransactionID: out.Transaction.Transaction.ID,
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if got := f.balance(t, f.checking.ID); !got.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("source balance = %s, want 1000", got)
	}
	if got := f.balance(t, f.credit.ID); !got.Equal(decimal.RequireFromString("-450")) {
		t.Errorf("destination balance = %s, want -450", got)
	}
}

func TestDeleteUnknownTransaction(t *testing.T) {
	f := newLifecycleFixture(t)

	err := f.delete.Execute(context.Background(), DeleteTransactionInput{
		UserID:        f.userID,
		TransactionID: uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("got %v, want ErrTransactionNotFound", err)
	}
}
