package dto

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/content"
)

type ContentResponse struct {
	SID       string         `json:"sid"`
	Feature   string         `json:"feature"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func ToContentResponse(c *content.GeneratedContent) *ContentResponse {
	return &ContentResponse{
		SID:       c.SID,
		Feature:   c.Feature.String(),
		Title:     c.Title,
		Body:      c.Body,
		Metadata:  c.Metadata,
		CreatedAt: c.CreatedAt,
	}
}

func ToContentResponses(items []*content.GeneratedContent) []*ContentResponse {
	out := make([]*ContentResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToContentResponse(c))
	}
	return out
}
