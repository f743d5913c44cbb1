// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of money account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

// DefaultCurrency is the currency assigned to accounts that do not specify one.
const DefaultCurrency = "USD"

// Account represents a money account owned by a user. The balance of a credit
// account is negative while debt is outstanding; for all other account types
// the balance is the amount of money held.
//
// Balance is only ever mutated through the ledger balance authority.
type Account struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Type        AccountType
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal // Only meaningful for credit accounts
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, balance decimal.Decimal, creditLimit *decimal.Decimal, currency string) *Account {
	now := time.Now().UTC()

	if currency == "" {
		currency = DefaultCurrency
	}

	return &Account{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Type:        accountType,
		Balance:     balance,
		CreditLimit: creditLimit,
		Currency:    currency,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsCredit reports whether the account is a credit account.
func (a *Account) IsCredit() bool {
	return a.Type == AccountTypeCredit
}

// AvailableCredit returns the remaining credit for a credit account with a
// limit set (creditLimit + balance, where balance is negative for debt).
// It returns false when the account carries no credit limit.
func (a *Account) AvailableCredit() (decimal.Decimal, bool) {
	if !a.IsCredit() || a.CreditLimit == nil {
		return decimal.Zero, false
	}
	return a.CreditLimit.Add(a.Balance), true
}

// ValidAccountType reports whether the given account type is one of the
// supported kinds.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeCash, AccountTypeInvestment:
		return true
	}
	return false
}
