package dto

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// InsightItemResponse represents one structured insight item.
type InsightItemResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// InsightResponse represents a generated insight document.
type InsightResponse struct {
	ID          string                `json:"id"`
	Items       []InsightItemResponse `json:"items"`
	GeneratedAt time.Time             `json:"generated_at"`
	ValidUntil  time.Time             `json:"valid_until"`
	IsFallback  bool                  `json:"is_fallback"`
	Cached      bool                  `json:"cached"`
}

// ToInsightResponse converts an insight document to its DTO.
func ToInsightResponse(insight *entity.AIInsight, cached bool) InsightResponse {
	items := make([]InsightItemResponse, len(insight.Items))
	for i, item := range insight.Items {
		items[i] = InsightItemResponse(item)
	}
	return InsightResponse{
		ID:          insight.ID.String(),
		Items:       items,
		GeneratedAt: insight.GeneratedAt,
		ValidUntil:  insight.ValidUntil,
		IsFallback:  insight.IsFallback,
		Cached:      cached,
	}
}
