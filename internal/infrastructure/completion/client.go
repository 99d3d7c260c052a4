// Package completion talks to an OpenAI-compatible generation API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/generation"
	"github.com/creatorhub/creatorhub/internal/shared/config"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

const (
	defaultTimeout = 60 * time.Second
	// Maximum response body size (4MB)
	maxResponseSize  = 4 << 20
	defaultImageSize = "1280x720"
)

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []generation.Message `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message generation.Message `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client implements generation.Generator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	logger     logger.Interface
}

var _ generation.Generator = (*Client)(nil)

func NewClient(cfg config.CompletionConfig, logger logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		logger:     logger,
	}
}

func (c *Client) Complete(ctx context.Context, req generation.TextRequest) (string, error) {
	messages := make([]generation.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, generation.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	var resp chatResponse
	err := c.post(ctx, "/chat/completions", chatRequest{
		Model:       c.textModel,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", generation.ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) GenerateImages(ctx context.Context, req generation.ImageRequest) ([]string, error) {
	n := req.Count
	if n <= 0 {
		n = 1
	}
	size := req.Size
	if size == "" {
		size = defaultImageSize
	}

	var resp imageResponse
	if err := c.post(ctx, "/images/generations", imageRequest{
		Model:  c.imageModel,
		Prompt: req.Prompt,
		N:      n,
		Size:   size,
	}, &resp); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.URL != "" {
			urls = append(urls, d.URL)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no images returned", generation.ErrUnavailable)
	}
	return urls, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", generation.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", generation.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.classify(path, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", generation.ErrUnavailable, err)
	}
	return nil
}

func (c *Client) classify(path string, status int, body []byte) error {
	var e errorResponse
	_ = json.Unmarshal(body, &e)

	c.logger.Warnw("generation request failed",
		"path", path,
		"status", status,
		"error_type", e.Error.Type,
		"error_code", e.Error.Code,
	)

	switch {
	case e.Error.Code == "insufficient_quota" || e.Error.Type == "insufficient_quota":
		return fmt.Errorf("%w: %s", generation.ErrQuotaExceeded, e.Error.Message)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", generation.ErrRateLimited, e.Error.Message)
	default:
		return fmt.Errorf("%w: status %d", generation.ErrUnavailable, status)
	}
}
