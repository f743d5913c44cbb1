// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// GeminiInsightService implements adapter.InsightGenerator using Google Gemini.
type GeminiInsightService struct {
	apiKey    string
	modelName string
}

// NewGeminiInsightService creates a new Gemini insight service instance.
func NewGeminiInsightService(apiKey, modelName string) *GeminiInsightService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &GeminiInsightService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiInsightService) IsAvailable() bool {
	return s.apiKey != ""
}

// Generate produces structured insight items from the financial context.
func (s *GeminiInsightService) Generate(ctx context.Context, insightCtx *adapter.InsightContext) ([]entity.InsightItem, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(insightCtx)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	items, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return items, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiInsightService) buildPrompt(insightCtx *adapter.InsightContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`You are a personal finance advisor. Analyze the financial snapshot below and produce at most %d short, actionable insights.

FINANCIAL SNAPSHOT (last %d days):
- Total income: %s
- Total expenses: %s
- Net balance: %s
- Savings rate: %.1f%%
`,
		entity.MaxInsightItems,
		insightCtx.Days,
		insightCtx.TotalIncome.StringFixed(2),
		insightCtx.TotalExpenses.StringFixed(2),
		insightCtx.NetBalance.StringFixed(2),
		insightCtx.SavingsRate,
	))

	if len(insightCtx.TopCategories) > 0 {
		sb.WriteString("\nTOP SPENDING CATEGORIES:\n")
		for _, cat := range insightCtx.TopCategories {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", cat.CategoryName, cat.Total.StringFixed(2)))
		}
	}

	sb.WriteString(fmt.Sprintf(`
BUDGETS: %d active, %d over budget, %d near their alert threshold
GOALS: %d active`,
		insightCtx.ActiveBudgets,
		insightCtx.OverBudgetCount,
		insightCtx.NearThresholdCnt,
		insightCtx.ActiveGoals,
	))
	if insightCtx.NearestDeadline != "" {
		sb.WriteString(fmt.Sprintf(", nearest deadline %s", insightCtx.NearestDeadline))
	}

	sb.WriteString(`

RULES:
- Be specific: reference the actual numbers and category names above
- Each insight is one or two sentences, no generic advice
- "type" must be one of: "tip", "warning", "achievement", "info"
- "icon" must be one of: piggy-bank, chart-line, wallet, alert-triangle, trophy, target, trending-up, trending-down
- "color" is a hex color matching the tone (green for achievements, amber for warnings)

Respond with a JSON array where each element is:
{
  "type": "tip" | "warning" | "achievement" | "info",
  "title": "short title",
  "message": "one or two sentences",
  "icon": "icon name from the list",
  "color": "#XXXXXX"
}

RESPONSE FORMAT: return only the JSON array, no additional text.
`)

	return sb.String()
}

// parseResponse parses the Gemini response into insight items.
func (s *GeminiInsightService) parseResponse(resp *genai.GenerateContentResponse) ([]entity.InsightItem, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var items []entity.InsightItem
	if err := json.Unmarshal([]byte(textContent), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	valid := make([]entity.InsightItem, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Message == "" {
			continue
		}
		switch item.Type {
		case "tip", "warning", "achievement", "info":
		default:
			item.Type = "info"
		}
		valid = append(valid, item)
		if len(valid) == entity.MaxInsightItems {
			break
		}
	}

	return valid, nil
}

var _ adapter.InsightGenerator = (*GeminiInsightService)(nil)
