// Package generation is the port to the upstream content-generation provider.
package generation

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited means the provider throttled us; retrying later may succeed.
	ErrRateLimited = errors.New("generation provider rate limited")
	// ErrQuotaExceeded means the provider account is out of credit.
	ErrQuotaExceeded = errors.New("generation provider quota exceeded")
	ErrUnavailable   = errors.New("generation provider unavailable")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextRequest struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type ImageRequest struct {
	Prompt string
	Size   string
	Count  int
}

type Generator interface {
	Complete(ctx context.Context, req TextRequest) (string, error)
	// GenerateImages returns image URLs.
	GenerateImages(ctx context.Context, req ImageRequest) ([]string, error)
}

// IsProviderError reports whether err came from the provider rather than
// from our own validation.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrUnavailable)
}
