// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// requireUser extracts the authenticated user from the gin context, writing a
// 401 response when it is missing.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Error(
			"User not authenticated",
			string(domainerror.ErrCodeMissingToken),
		))
	}
	return userID, ok
}

// parseIDParam parses the named URL parameter as a UUID, writing a 400
// response on failure.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid "+name+" format", ""))
		return uuid.Nil, false
	}
	return id, true
}

// parseDate accepts a date-only or RFC 3339 timestamp string.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseAmount parses a decimal amount from its string form.
func parseAmount(ctx *gin.Context, value string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Error("Invalid amount format", ""))
		return decimal.Zero, false
	}
	return amount, true
}

// internalError writes the generic 500 response.
func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.Error("An internal error occurred", ""))
}
