// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Insight validity windows. Fallback insights are rule-generated and kept for
// a shorter time so the external generator is retried sooner.
const (
	InsightTTL         = 24 * time.Hour
	InsightFallbackTTL = 6 * time.Hour
)

// MaxInsightItems caps how many structured items one insight document holds.
const MaxInsightItems = 3

// InsightItem is a single structured piece of generated financial advice.
type InsightItem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
}

// AIInsight is one cached generation result. Documents are written once and
// never updated in place; regeneration always produces a new document.
type AIInsight struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Items       []InsightItem
	Context     string // Snapshot of the financial context the items were generated from
	GeneratedAt time.Time
	ValidUntil  time.Time
	IsFallback  bool
	CreatedAt   time.Time
}

// NewAIInsight creates a new AIInsight document. Items beyond the maximum are
// dropped. The validity window depends on whether the items came from the
// external generator or the deterministic fallback.
func NewAIInsight(userID uuid.UUID, items []InsightItem, contextSnapshot string, isFallback bool) *AIInsight {
	now := time.Now().UTC()

	if len(items) > MaxInsightItems {
		items = items[:MaxInsightItems]
	}

	ttl := InsightTTL
	if isFallback {
		ttl = InsightFallbackTTL
	}

	return &AIInsight{
		ID:          uuid.New(),
		UserID:      userID,
		Items:       items,
		Context:     contextSnapshot,
		GeneratedAt: now,
		ValidUntil:  now.Add(ttl),
		IsFallback:  isFallback,
		CreatedAt:   now,
	}
}

// IsValid reports whether the insight may still be served from cache at the
// given time.
func (i *AIInsight) IsValid(now time.Time) bool {
	return now.Before(i.ValidUntil)
}
