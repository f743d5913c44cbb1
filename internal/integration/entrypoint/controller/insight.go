package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/application/usecase/insight"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
)

// InsightController handles the insight endpoint.
type InsightController struct {
	generateUseCase *insight.GenerateInsightsUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(generateUseCase *insight.GenerateInsightsUseCase) *InsightController {
	return &InsightController{generateUseCase: generateUseCase}
}

// Generate handles GET /insights/generate requests. Generator failure never
// surfaces here; the use case substitutes fallback insights, so errors are
// persistence-level only.
func (c *InsightController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(ctx.Query("days"))

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), insight.GenerateInsightsInput{
		UserID:  userID,
		Days:    days,
		Refresh: ctx.Query("forceRefresh") == "true",
	})
	if err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToInsightResponse(output.Insight, output.Cached)))
}
