// Package usage records and queries billable activity.
package usage

import (
	"context"

	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// Recorder appends usage entries after a successful deduction. A failed
// append is logged and dropped; the deduction it describes stands.
type Recorder struct {
	repo   usage.Repository
	logger logger.Interface
}

func NewRecorder(repo usage.Repository, logger logger.Interface) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record reports whether the entry was stored.
func (r *Recorder) Record(ctx context.Context, entry *usage.Entry) bool {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = biztime.NowUTC()
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Errorw("failed to record usage",
			"error", err,
			"user_id", entry.UserID,
			"feature", entry.Feature,
			"tokens_used", entry.TokensUsed,
		)
		return false
	}
	return true
}
