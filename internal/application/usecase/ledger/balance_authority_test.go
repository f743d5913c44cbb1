package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

type fakeAccountRepo struct {
	updated *entity.Account
	err     error
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }
func (f *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	f.updated = account
	return f.err
}
func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func newCreditAccount(balance, limit string) *entity.Account {
	l := decimal.RequireFromString(limit)
	return &entity.Account{
		ID:          uuid.New(),
		Type:        entity.AccountTypeCredit,
		Balance:     decimal.RequireFromString(balance),
		CreditLimit: &l,
	}
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		account     *entity.Account
		delta       string
		wantBalance string
		wantErr     bool
	}{
		{
			name:        "income increases checking balance",
			account:     &entity.Account{Type: entity.AccountTypeChecking, Balance: decimal.RequireFromString("100")},
			delta:       "50",
			wantBalance: "150",
		},
		{
			name:        "expense can drive checking negative",
			account:     &entity.Account{Type: entity.AccountTypeChecking, Balance: decimal.RequireFromString("20")},
			delta:       "-50",
			wantBalance: "-30",
		},
		{
			name:        "credit spend within limit",
			account:     newCreditAccount("-400", "1000"),
			delta:       "-600",
			wantBalance: "-1000",
		},
		{
			name:    "credit spend exceeding limit rejected",
			account: newCreditAccount("-400", "1000"),
			delta:   "-600.01",
			wantErr: true,
		},
		{
			name:        "refund on maxed credit account admitted",
			account:     newCreditAccount("-1200", "1000"),
			delta:       "100",
			wantBalance: "-1100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAccountRepo{}
			authority := NewBalanceAuthority(repo)
			before := tt.account.Balance

			err := authority.ApplyDelta(context.Background(), tt.account, decimal.RequireFromString(tt.delta))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected admission error, got nil")
				}
				var admissionErr *domainerror.AdmissionError
				if !errors.As(err, &admissionErr) {
					t.Fatalf("expected AdmissionError, got %v", err)
				}
				if !tt.account.Balance.Equal(before) {
					t.Errorf("balance mutated on rejected delta: %s", tt.account.Balance)
				}
				if repo.updated != nil {
					t.Error("account persisted despite rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.account.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("balance = %s, want %s", tt.account.Balance, tt.wantBalance)
			}
			if repo.updated == nil {
				t.Error("account not persisted")
			}
		})
	}
}

func TestApplyReversalBypassesAdmission(t *testing.T) {
	// Account already over its limit: reversing an old income still works.
	account := newCreditAccount("-1000", "1000")
	repo := &fakeAccountRepo{}
	authority := NewBalanceAuthority(repo)

	if err := authority.ApplyReversal(context.Background(), account, decimal.RequireFromString("-50")); err != nil {
		t.Fatalf("reversal rejected: %v", err)
	}
	if !account.Balance.Equal(decimal.RequireFromString("-1050")) {
		t.Errorf("balance = %s, want -1050", account.Balance)
	}
}

func TestDebit(t *testing.T) {
	t.Run("rejects non-positive amount", func(t *testing.T) {
		account := &entity.Account{Type: entity.AccountTypeSavings, Balance: decimal.RequireFromString("100")}
		authority := NewBalanceAuthority(&fakeAccountRepo{})

		err := authority.Debit(context.Background(), account, decimal.Zero)
		if !errors.Is(err, domainerror.ErrInvalidContributionAmount) {
			t.Fatalf("expected ErrInvalidContributionAmount, got %v", err)
		}
	})

	t.Run("rejects insufficient savings balance", func(t *testing.T) {
		account := &entity.Account{Type: entity.AccountTypeSavings, Balance: decimal.RequireFromString("30")}
		authority := NewBalanceAuthority(&fakeAccountRepo{})

		err := authority.Debit(context.Background(), account, decimal.RequireFromString("30.01"))
		var admissionErr *domainerror.AdmissionError
		if !errors.As(err, &admissionErr) {
			t.Fatalf("expected AdmissionError, got %v", err)
		}
		if admissionErr.Code != domainerror.ErrCodeInsufficientBalance {
			t.Errorf("code = %s, want %s", admissionErr.Code, domainerror.ErrCodeInsufficientBalance)
		}
	})

	t.Run("credit debit goes through admission control", func(t *testing.T) {
		account := newCreditAccount("-900", "1000")
		authority := NewBalanceAuthority(&fakeAccountRepo{})

		if err := authority.Debit(context.Background(), account, decimal.RequireFromString("100")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !account.Balance.Equal(decimal.RequireFromString("-1000")) {
			t.Errorf("balance = %s, want -1000", account.Balance)
		}
	})
}
