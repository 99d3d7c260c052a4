// Package billable runs token-gated actions: entitlement check, atomic
// deduction, upstream generation, then persistence and usage recording.
package billable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorhub/creatorhub/internal/domain/content"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/generation"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/constants"
	apperrors "github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/id"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

const (
	RefundNever          = "never"
	RefundProviderErrors = "provider_errors"

	defaultUpstreamTimeout = 90 * time.Second
)

// Evaluator resolves a feature's entitlement for a plan.
type Evaluator interface {
	Execute(ctx context.Context, feature entitlement.FeatureID, plan entitlement.Plan) (entitlement.Entitlement, error)
}

// UsageRecorder appends usage entries without failing the caller.
type UsageRecorder interface {
	Record(ctx context.Context, entry *usage.Entry) bool
}

// Command identifies who runs which feature.
type Command struct {
	UserID  string
	Feature entitlement.FeatureID
	// Action names the endpoint in the usage log; defaults to the feature id.
	Action string
}

// Outcome is what a completed action returns to the client.
type Outcome struct {
	Result          any
	ContentSID      string
	TokensUsed      int
	TokensRemaining int
	AccessTier      entitlement.AccessTier
}

type Options struct {
	RefundPolicy    string
	UpstreamTimeout time.Duration
}

type Gateway struct {
	ledger    ledger.Repository
	evaluator Evaluator
	contents  content.Repository
	recorder  UsageRecorder
	opts      Options
	logger    logger.Interface
}

func NewGateway(
	ledger ledger.Repository,
	evaluator Evaluator,
	contents content.Repository,
	recorder UsageRecorder,
	opts Options,
	logger logger.Interface,
) *Gateway {
	if opts.RefundPolicy == "" {
		opts.RefundPolicy = RefundNever
	}
	if opts.UpstreamTimeout <= 0 {
		opts.UpstreamTimeout = defaultUpstreamTimeout
	}
	return &Gateway{
		ledger:    ledger,
		evaluator: evaluator,
		contents:  contents,
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
	}
}

// Execute runs one billable action. Tokens are debited exactly once, before
// the upstream call; the debit stands whatever the client does afterwards.
func (g *Gateway) Execute(ctx context.Context, cmd Command, capability Capability) (*Outcome, error) {
	log := g.logger.With("user_id", cmd.UserID, "feature", cmd.Feature)
	if cmd.Action == "" {
		cmd.Action = cmd.Feature.String()
	}

	account, err := g.ledger.Get(ctx, cmd.UserID)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return nil, apperrors.NewUnauthorizedError("account not initialized")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	log.Debugw("billable request authenticated", "stage", "authenticated", "plan", account.Plan)

	ent, err := g.evaluator.Execute(ctx, cmd.Feature, account.Plan)
	if errors.Is(err, entitlement.ErrUnknownFeature) {
		g.count(cmd.Feature, "unknown_feature")
		return nil, apperrors.NewConfigurationError("unknown feature", cmd.Feature.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate entitlement: %w", err)
	}
	if !ent.AccessTier.Allowed() {
		g.count(cmd.Feature, "denied")
		log.Infow("feature not available on plan", "stage", "entitlement_checked", "plan", account.Plan, "required_plan", ent.RequiredPlanForFull)
		return nil, apperrors.NewInsufficientPlanError(
			fmt.Sprintf("%s requires the %s plan", cmd.Feature, ent.RequiredPlanForFull),
		).WithMeta("required_plan", ent.RequiredPlanForFull.String()).WithMeta("feature", cmd.Feature.String())
	}
	log.Debugw("entitlement checked", "stage", "entitlement_checked", "access_tier", ent.AccessTier, "token_cost", ent.TokenCost)

	remaining, err := g.ledger.TryDeduct(ctx, cmd.UserID, ent.TokenCost)
	if err != nil {
		var ibe *ledger.InsufficientBalanceError
		if errors.As(err, &ibe) {
			g.count(cmd.Feature, "insufficient_tokens")
			log.Infow("insufficient tokens", "stage", "tokens_reserved", "required", ibe.Required, "available", ibe.Available)
			return nil, apperrors.NewInsufficientTokensError(
				fmt.Sprintf("%s costs %d tokens, %d remaining", cmd.Feature, ibe.Required, ibe.Available),
			).WithMeta("tokens_required", ibe.Required).WithMeta("tokens_remaining", ibe.Available)
		}
		return nil, fmt.Errorf("failed to reserve tokens: %w", err)
	}
	metrics.TokensDebited.WithLabelValues(cmd.Feature.String()).Add(float64(ent.TokenCost))
	log.Infow("tokens reserved", "stage", "tokens_reserved", "tokens_used", ent.TokenCost, "tokens_remaining", remaining)

	// Past this point the deduction is committed; a client disconnect must
	// not abandon the work it paid for.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.opts.UpstreamTimeout)
	defer cancel()

	start := time.Now()
	result, err := capability.Run(runCtx, Invocation{UserID: cmd.UserID, Tier: ent.AccessTier})
	metrics.UpstreamDuration.WithLabelValues(cmd.Feature.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, g.upstreamFailed(runCtx, log, cmd, ent, remaining, err)
	}
	log.Debugw("upstream completed", "stage", "upstream_invoked", "elapsed", time.Since(start))

	sid := g.persist(runCtx, log, cmd, ent, result)

	meta := map[string]any{"access_tier": ent.AccessTier.String()}
	if sid != "" {
		meta["content_sid"] = sid
	}
	for k, v := range result.Metadata {
		meta[k] = v
	}
	g.recorder.Record(runCtx, &usage.Entry{
		UserID:     cmd.UserID,
		Action:     cmd.Action,
		Feature:    cmd.Feature,
		TokensUsed: ent.TokenCost,
		Metadata:   meta,
	})

	g.count(cmd.Feature, "completed")
	log.Infow("billable action completed", "stage", "completed", "tokens_used", ent.TokenCost, "tokens_remaining", remaining)

	return &Outcome{
		Result:          result.Data,
		ContentSID:      sid,
		TokensUsed:      ent.TokenCost,
		TokensRemaining: remaining,
		AccessTier:      ent.AccessTier,
	}, nil
}

func (g *Gateway) upstreamFailed(ctx context.Context, log logger.Interface, cmd Command, ent entitlement.Entitlement, remaining int, cause error) error {
	g.count(cmd.Feature, "upstream_failed")
	log.Errorw("upstream generation failed", "stage", "upstream_failed", "error", cause, "tokens_used", ent.TokenCost)

	if g.opts.RefundPolicy == RefundProviderErrors && ent.TokenCost > 0 && isProviderFailure(cause) {
		balance, err := g.ledger.Refund(ctx, cmd.UserID, ent.TokenCost)
		if err != nil {
			log.Errorw("failed to refund tokens", "error", err, "amount", ent.TokenCost)
		} else {
			remaining = balance
			metrics.TokensRefunded.WithLabelValues(cmd.Feature.String()).Add(float64(ent.TokenCost))
			log.Infow("tokens refunded", "amount", ent.TokenCost, "tokens_remaining", remaining)
		}
	}

	var appErr *apperrors.AppError
	if errors.Is(cause, generation.ErrRateLimited) {
		appErr = apperrors.NewRateLimitedError("the generation service is busy, try again shortly")
	} else {
		appErr = apperrors.NewUpstreamError("the generation service is unavailable, try again later")
	}
	return appErr.WithMeta("tokens_remaining", remaining)
}

// isProviderFailure excludes failures of our own making, such as a capability
// rejecting its input, from refunds.
func isProviderFailure(err error) bool {
	return generation.IsProviderError(err) || errors.Is(err, context.DeadlineExceeded)
}

func (g *Gateway) persist(ctx context.Context, log logger.Interface, cmd Command, ent entitlement.Entitlement, result *Result) string {
	if !result.Persist {
		return ""
	}
	sid, err := id.GenerateWithPrefix(constants.PrefixContent)
	if err != nil {
		log.Errorw("failed to generate content id", "error", err)
		return ""
	}
	meta := map[string]any{"access_tier": ent.AccessTier.String()}
	for k, v := range result.Metadata {
		meta[k] = v
	}
	c := &content.GeneratedContent{
		SID:       sid,
		UserID:    cmd.UserID,
		Feature:   cmd.Feature,
		Title:     result.Title,
		Body:      result.Body,
		Metadata:  meta,
		CreatedAt: biztime.NowUTC(),
	}
	if err := g.contents.Create(ctx, c); err != nil {
		log.Errorw("failed to persist generated content", "error", err)
		return ""
	}
	return sid
}

func (g *Gateway) count(feature entitlement.FeatureID, outcome string) {
	metrics.BillableRequests.WithLabelValues(feature.String(), outcome).Inc()
}
