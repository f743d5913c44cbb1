package dto

import (
	"time"

	"github.com/finsight/backend/internal/application/usecase/account"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Type        string  `json:"type" binding:"required,oneof=checking savings credit cash investment"`
	Balance     string  `json:"balance,omitempty"`
	CreditLimit *string `json:"credit_limit,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// UpdateAccountRequest represents the request body for account updates.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	CreditLimit *string `json:"credit_limit,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Balance         string    `json:"balance"`
	CreditLimit     *string   `json:"credit_limit,omitempty"`
	AvailableCredit *string   `json:"available_credit,omitempty"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// DeleteAccountResponse reports whether the account was deactivated instead
// of removed.
type DeleteAccountResponse struct {
	Deactivated bool `json:"deactivated"`
}

// ToAccountResponse converts an account use case output to an AccountResponse DTO.
func ToAccountResponse(out *account.AccountOutput) AccountResponse {
	a := out.Account
	response := AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance.StringFixed(2),
		Currency:  a.Currency,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.CreditLimit != nil {
		limit := a.CreditLimit.StringFixed(2)
		response.CreditLimit = &limit
	}
	if out.AvailableCredit != nil {
		available := out.AvailableCredit.StringFixed(2)
		response.AvailableCredit = &available
	}

	return response
}

// ToAccountListResponse converts a list of account outputs to AccountListResponse.
func ToAccountListResponse(outputs []*account.AccountOutput) AccountListResponse {
	accounts := make([]AccountResponse, len(outputs))
	for i, out := range outputs {
		accounts[i] = ToAccountResponse(out)
	}
	return AccountListResponse{Accounts: accounts}
}
