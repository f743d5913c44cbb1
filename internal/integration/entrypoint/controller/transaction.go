package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	statsUseCase  *transaction.TransactionStatsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	statsUseCase *transaction.TransactionStatsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		statsUseCase:  statsUseCase,
	}
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error(
			"Invalid request body: "+err.Error(),
			string(domainerror.ErrCodeMissingTransactionFields),
		))
		return
	}

	amount, ok := parseAmount(ctx, req.Amount)
	if !ok {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error(
			"Invalid date format",
			string(domainerror.ErrCodeInvalidTransactionDate),
		))
		return
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid account ID format", ""))
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionType(req.Type),
		Amount:      amount,
		AccountID:   accountID,
		Date:        date,
		Status:      entity.TransactionStatus(req.Status),
		Description: req.Description,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}

	if req.ToAccountID != nil {
		toID, err := uuid.Parse(*req.ToAccountID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid destination account ID format", ""))
			return
		}
		input.ToAccountID = &toID
	}
	if req.CategoryID != nil {
		catID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid category ID format", ""))
			return
		}
		input.CategoryID = &catID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(dto.ToTransactionResponse(output.Transaction)))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if v := ctx.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid start_date format", ""))
			return
		}
		input.StartDate = &t
	}
	if v := ctx.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid end_date format", ""))
			return
		}
		input.EndDate = &t
	}
	if v := ctx.Query("account_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid account_id format", ""))
			return
		}
		input.AccountID = &id
	}
	if v := ctx.Query("category_ids"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.Error("Invalid category_ids format", ""))
				return
			}
			input.CategoryIDs = append(input.CategoryIDs, id)
		}
	}
	if v := ctx.Query("type"); v != "" {
		txnType := entity.TransactionType(v)
		input.Type = &txnType
	}
	input.Page, _ = strconv.Atoi(ctx.Query("page"))
	input.Limit, _ = strconv.Atoi(ctx.Query("limit"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToTransactionListResponse(output)))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToTransactionResponse(output.Transaction)))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid request body: "+err.Error(), ""))
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Description:   req.Description,
		Notes:         req.Notes,
		Tags:          req.Tags,
	}
	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error(
				"Invalid date format",
				string(domainerror.ErrCodeInvalidTransactionDate),
			))
			return
		}
		input.Date = &t
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToTransactionResponse(output.Transaction)))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Stats handles GET /transactions/stats requests.
func (c *TransactionController) Stats(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.TransactionStatsInput{UserID: userID}

	if v := ctx.Query("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid start_date format", ""))
			return
		}
		input.StartDate = &t
	}
	if v := ctx.Query("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid end_date format", ""))
			return
		}
		input.EndDate = &t
	}
	if v := ctx.Query("account_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Error("Invalid account_id format", ""))
			return
		}
		input.AccountID = &id
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToTransactionStatsResponse(output)))
}

// handleTransactionError maps transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var admissionErr *domainerror.AdmissionError
	if errors.As(err, &admissionErr) {
		ctx.JSON(http.StatusBadRequest, dto.Error(admissionErr.Error(), string(admissionErr.Code)))
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(statusCodeForTransactionError(txnErr.Code), dto.Error(txnErr.Message, string(txnErr.Code)))
		return
	}

	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		ctx.JSON(statusCodeForAccountError(accountErr.Code), dto.Error(accountErr.Message, string(accountErr.Code)))
		return
	}

	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		ctx.JSON(statusCodeForCategoryError(categoryErr.Code), dto.Error(categoryErr.Message, string(categoryErr.Code)))
		return
	}

	internalError(ctx)
}

// statusCodeForTransactionError maps transaction error codes to HTTP status codes.
func statusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeCategoryRequired,
		domainerror.ErrCodeCategoryNotAllowed,
		domainerror.ErrCodeDestinationRequired,
		domainerror.ErrCodeSameTransferAccounts,
		domainerror.ErrCodeCategoryTypeMismatch,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
