package billable

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/generation"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/markdown"
)

const (
	maxPromptLength = 1000

	fullThumbnailCount    = 3
	limitedThumbnailCount = 1
	thumbnailSize         = "1280x720"

	defaultIdeaCount = 5
	maxIdeaCount     = 10

	maxChatMessages = 20
)

// Capabilities builds per-request capabilities around the shared
// generation client.
type Capabilities struct {
	generator generation.Generator
	renderer  markdown.Renderer
	usage     usage.Repository
}

func NewCapabilities(generator generation.Generator, renderer markdown.Renderer, usage usage.Repository) *Capabilities {
	return &Capabilities{generator: generator, renderer: renderer, usage: usage}
}

// cleanPrompt strips markup from user text, normalizes it to NFC and bounds
// its length.
func (c *Capabilities) cleanPrompt(field, s string) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(c.renderer.PlainText(s)))
	if s == "" {
		return "", apperrors.NewValidationError(field + " is required")
	}
	if utf8.RuneCountInString(s) > maxPromptLength {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s must be at most %d characters", field, maxPromptLength))
	}
	return s, nil
}

func (c *Capabilities) renderHTML(md string) string {
	html, err := c.renderer.ToHTMLSanitized(md)
	if err != nil {
		return ""
	}
	return html
}

// Thumbnail renders YouTube thumbnails. LIMITED access yields a single image.
func (c *Capabilities) Thumbnail(prompt, style string) (Capability, error) {
	prompt, err := c.cleanPrompt("prompt", prompt)
	if err != nil {
		return nil, err
	}
	style = strings.TrimSpace(c.renderer.PlainText(style))

	return CapabilityFunc(func(ctx context.Context, inv Invocation) (*Result, error) {
		count := fullThumbnailCount
		if inv.Tier == entitlement.AccessLimited {
			count = limitedThumbnailCount
		}
		full := "YouTube thumbnail, bold readable composition, high contrast: " + prompt
		if style != "" {
			full += ". Style: " + style
		}

		urls, err := c.generator.GenerateImages(ctx, generation.ImageRequest{Prompt: full, Size: thumbnailSize, Count: count})
		if err != nil {
			return nil, err
		}
		return &Result{
			Title:    truncate(prompt, 80),
			Body:     strings.Join(urls, "\n"),
			Data:     map[string]any{"images": urls},
			Metadata: map[string]any{"images": len(urls)},
			Persist:  true,
		}, nil
	}), nil
}

// VideoIdeas brainstorms titled video concepts for a topic.
func (c *Capabilities) VideoIdeas(topic string, count int) (Capability, error) {
	topic, err := c.cleanPrompt("topic", topic)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = defaultIdeaCount
	}
	if count > maxIdeaCount {
		return nil, apperrors.NewValidationError(fmt.Sprintf("count must be at most %d", maxIdeaCount))
	}

	return CapabilityFunc(func(ctx context.Context, _ Invocation) (*Result, error) {
		text, err := c.generator.Complete(ctx, generation.TextRequest{
			System:      "You are a YouTube strategist. Reply with one idea per line: a catchy title, a dash, then a one-sentence hook. No numbering.",
			Messages:    []generation.Message{{Role: "user", Content: fmt.Sprintf("Give me %d video ideas about: %s", count, topic)}},
			MaxTokens:   800,
			Temperature: 0.9,
		})
		if err != nil {
			return nil, err
		}
		ideas := splitLines(text, count)
		return &Result{
			Title:    truncate(topic, 80),
			Body:     strings.Join(ideas, "\n"),
			Data:     map[string]any{"ideas": ideas},
			Metadata: map[string]any{"ideas": len(ideas)},
			Persist:  true,
		}, nil
	}), nil
}

// BrandingKit drafts a brand kit. LIMITED access returns the color palette
// only. A saved brand profile, when given, seeds the prompt.
func (c *Capabilities) BrandingKit(channelName, niche string, profile *brand.BrandProfile) (Capability, error) {
	if profile != nil {
		if channelName == "" {
			channelName = profile.Name()
		}
		if niche == "" {
			niche = profile.Niche()
		}
	}
	channelName, err := c.cleanPrompt("channel_name", channelName)
	if err != nil {
		return nil, err
	}
	niche = strings.TrimSpace(c.renderer.PlainText(niche))

	return CapabilityFunc(func(ctx context.Context, inv Invocation) (*Result, error) {
		var b strings.Builder
		fmt.Fprintf(&b, "Channel: %s\n", channelName)
		if niche != "" {
			fmt.Fprintf(&b, "Niche: %s\n", niche)
		}
		if profile != nil {
			if profile.Tone() != "" {
				fmt.Fprintf(&b, "Tone: %s\n", profile.Tone())
			}
			if len(profile.Colors()) > 0 {
				fmt.Fprintf(&b, "Existing colors: %s\n", strings.Join(profile.Colors(), ", "))
			}
		}

		system := "You are a brand designer for YouTube creators. Answer in Markdown."
		ask := "Propose a five color palette with hex codes, a tagline, two font pairings, and a short brand voice guide."
		maxTokens := 1200
		if inv.Tier == entitlement.AccessLimited {
			ask = "Propose a five color palette with hex codes and nothing else."
			maxTokens = 300
		}
		b.WriteString(ask)

		text, err := c.generator.Complete(ctx, generation.TextRequest{
			System:      system,
			Messages:    []generation.Message{{Role: "user", Content: b.String()}},
			MaxTokens:   maxTokens,
			Temperature: 0.7,
		})
		if err != nil {
			return nil, err
		}
		meta := map[string]any{"scope": scopeFor(inv.Tier)}
		if profile != nil {
			meta["brand_profile_sid"] = profile.SID()
		}
		return &Result{
			Title:    channelName,
			Body:     text,
			Data:     map[string]any{"markdown": text, "html": c.renderHTML(text)},
			Metadata: meta,
			Persist:  true,
		}, nil
	}), nil
}

// NicheAnalysis evaluates a content niche. LIMITED access returns a short
// summary instead of the full competitive breakdown.
func (c *Capabilities) NicheAnalysis(niche string) (Capability, error) {
	niche, err := c.cleanPrompt("niche", niche)
	if err != nil {
		return nil, err
	}

	return CapabilityFunc(func(ctx context.Context, inv Invocation) (*Result, error) {
		ask := "Analyze this YouTube niche in Markdown: audience, competition level, monetization options, content gaps, and a 30 day plan."
		maxTokens := 1500
		if inv.Tier == entitlement.AccessLimited {
			ask = "Summarize in one short Markdown paragraph how attractive this YouTube niche is."
			maxTokens = 250
		}
		text, err := c.generator.Complete(ctx, generation.TextRequest{
			System:      "You are a YouTube market analyst.",
			Messages:    []generation.Message{{Role: "user", Content: ask + "\nNiche: " + niche}},
			MaxTokens:   maxTokens,
			Temperature: 0.4,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Title:    truncate(niche, 80),
			Body:     text,
			Data:     map[string]any{"markdown": text, "html": c.renderHTML(text)},
			Metadata: map[string]any{"scope": scopeFor(inv.Tier)},
			Persist:  true,
		}, nil
	}), nil
}

// Chat answers one assistant turn. History is replayed from the client;
// replies are not stored in the content library.
func (c *Capabilities) Chat(history []generation.Message) (Capability, error) {
	if len(history) == 0 {
		return nil, apperrors.NewValidationError("messages are required")
	}
	if len(history) > maxChatMessages {
		history = history[len(history)-maxChatMessages:]
	}
	msgs := make([]generation.Message, 0, len(history))
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			return nil, apperrors.NewValidationError("message role must be user or assistant", m.Role)
		}
		text, err := c.cleanPrompt("message", m.Content)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, generation.Message{Role: m.Role, Content: text})
	}
	if msgs[len(msgs)-1].Role != "user" {
		return nil, apperrors.NewValidationError("last message must come from the user")
	}

	return CapabilityFunc(func(ctx context.Context, _ Invocation) (*Result, error) {
		reply, err := c.generator.Complete(ctx, generation.TextRequest{
			System:      "You are a helpful assistant for YouTube creators. Answer in concise Markdown.",
			Messages:    msgs,
			MaxTokens:   700,
			Temperature: 0.7,
		})
		if err != nil {
			return nil, err
		}
		return &Result{
			Data: map[string]any{"reply": reply, "html": c.renderHTML(reply)},
		}, nil
	}), nil
}

// ChannelAnalytics summarizes the caller's activity in the current billing
// cycle. It costs nothing but is still plan gated.
func (c *Capabilities) ChannelAnalytics() Capability {
	return CapabilityFunc(func(ctx context.Context, inv Invocation) (*Result, error) {
		now := biztime.NowUTC()
		from := biztime.StartOfMonthUTC(now)
		summary, err := c.usage.Summarize(ctx, inv.UserID, from, now)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize usage: %w", err)
		}

		var actions, tokens int64
		for _, s := range summary {
			actions += s.Actions
			tokens += s.TokensUsed
		}
		return &Result{
			Data: map[string]any{
				"period_start": from.Format(time.RFC3339),
				"period_end":   biztime.NextCycleStartUTC(now).Format(time.RFC3339),
				"actions":      actions,
				"tokens_used":  tokens,
				"features":     summary,
			},
		}, nil
	})
}

func scopeFor(tier entitlement.AccessTier) string {
	if tier == entitlement.AccessLimited {
		return "limited"
	}
	return "full"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// splitLines returns up to max non-empty lines with list markers removed.
func splitLines(text string, max int) []string {
	out := make([]string, 0, max)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789.) "))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}
