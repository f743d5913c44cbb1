package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/application/usecase/account"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	createUseCase *account.CreateAccountUseCase
	listUseCase   *account.ListAccountsUseCase
	getUseCase    *account.GetAccountUseCase
	updateUseCase *account.UpdateAccountUseCase
	deleteUseCase *account.DeleteAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createUseCase *account.CreateAccountUseCase,
	listUseCase *account.ListAccountsUseCase,
	getUseCase *account.GetAccountUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
) *AccountController {
	return &AccountController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error(
			"Invalid request body: "+err.Error(),
			string(domainerror.ErrCodeMissingAccountFields),
		))
		return
	}

	input := account.CreateAccountInput{
		UserID:   userID,
		Name:     req.Name,
		Type:     entity.AccountType(req.Type),
		Currency: req.Currency,
	}

	if req.Balance != "" {
		balance, ok := parseAmount(ctx, req.Balance)
		if !ok {
			return
		}
		input.Balance = balance
	}
	if req.CreditLimit != nil {
		limit, ok := parseAmount(ctx, *req.CreditLimit)
		if !ok {
			return
		}
		input.CreditLimit = &limit
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(dto.ToAccountResponse(output.Account)))
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active") == "true",
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToAccountListResponse(output.Accounts)))
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToAccountResponse(output.Account)))
}

// Update handles PATCH /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid request body: "+err.Error(), ""))
		return
	}

	input := account.UpdateAccountInput{
		UserID:    userID,
		AccountID: accountID,
		Name:      req.Name,
		IsActive:  req.IsActive,
	}
	if req.CreditLimit != nil {
		limit, ok := parseAmount(ctx, *req.CreditLimit)
		if !ok {
			return
		}
		input.CreditLimit = &limit
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToAccountResponse(output.Account)))
}

// Delete handles DELETE /accounts/:id requests.
func (c *AccountController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.DeleteAccountResponse{Deactivated: output.Deactivated}))
}

// handleAccountError maps account errors to HTTP responses.
func (c *AccountController) handleAccountError(ctx *gin.Context, err error) {
	var admissionErr *domainerror.AdmissionError
	if errors.As(err, &admissionErr) {
		ctx.JSON(http.StatusBadRequest, dto.Error(admissionErr.Error(), string(admissionErr.Code)))
		return
	}

	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		ctx.JSON(statusCodeForAccountError(accountErr.Code), dto.Error(accountErr.Message, string(accountErr.Code)))
		return
	}

	internalError(ctx)
}

// statusCodeForAccountError maps account error codes to HTTP status codes.
// Ownership failures read as absence so the API never confirms that a
// foreign account exists.
func statusCodeForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound, domainerror.ErrCodeNotAuthorizedAccount:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeAccountInactive,
		domainerror.ErrCodeAccountHasTransactions,
		domainerror.ErrCodeMissingAccountFields,
		domainerror.ErrCodeCreditLimitOnNonCredit,
		domainerror.ErrCodeCreditLimitExceeded,
		domainerror.ErrCodeInsufficientBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
