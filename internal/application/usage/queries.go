package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorhub/creatorhub/internal/application/usage/dto"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/errors"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type QueryService struct {
	repo   usage.Repository
	logger logger.Interface
}

func NewQueryService(repo usage.Repository, logger logger.Interface) *QueryService {
	return &QueryService{repo: repo, logger: logger}
}

func (s *QueryService) List(ctx context.Context, filter usage.Filter) ([]dto.UsageEntryResponse, int64, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, 0, errors.NewValidationError("to must not be before from")
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to list usage", "error", err, "user_id", filter.UserID)
		return nil, 0, fmt.Errorf("failed to list usage: %w", err)
	}

	out := make([]dto.UsageEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToUsageEntryResponse(e))
	}
	return out, total, nil
}

// Summary aggregates per feature. A zero range means the current billing
// cycle.
func (s *QueryService) Summary(ctx context.Context, userID string, from, to time.Time) (*dto.UsageSummaryResponse, error) {
	now := biztime.NowUTC()
	if from.IsZero() {
		from = biztime.StartOfMonthUTC(now)
	}
	if to.IsZero() {
		to = now
	}
	if to.Before(from) {
		return nil, errors.NewValidationError("to must not be before from")
	}

	rows, err := s.repo.Summarize(ctx, userID, from, to)
	if err != nil {
		s.logger.Errorw("failed to summarize usage", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}

	resp := &dto.UsageSummaryResponse{From: from, To: to, Features: rows}
	for _, r := range rows {
		resp.TotalTokens += r.TokensUsed
		resp.TotalCount += r.Actions
	}
	return resp, nil
}
