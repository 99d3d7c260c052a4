package dto

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/usage"
)

type UsageEntryResponse struct {
	ID         uint           `json:"id"`
	Action     string         `json:"action"`
	Feature    string         `json:"feature"`
	TokensUsed int            `json:"tokens_used"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type UsageSummaryResponse struct {
	From        time.Time              `json:"from"`
	To          time.Time              `json:"to"`
	TotalTokens int64                  `json:"total_tokens"`
	TotalCount  int64                  `json:"total_actions"`
	Features    []usage.FeatureSummary `json:"features"`
}

func ToUsageEntryResponse(e *usage.Entry) UsageEntryResponse {
	return UsageEntryResponse{
		ID:         e.ID,
		Action:     e.Action,
		Feature:    e.Feature.String(),
		TokensUsed: e.TokensUsed,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
}
