package subscription

import (
	"context"
	"errors"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/metrics"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// ResetTokensJob restores balances for accounts that entered a new calendar
// month (UTC) since their last reset.
type ResetTokensJob struct {
	ledger ledger.Repository
	logger logger.Interface
}

func NewResetTokensJob(ledger ledger.Repository, logger logger.Interface) *ResetTokensJob {
	return &ResetTokensJob{ledger: ledger, logger: logger}
}

func (j *ResetTokensJob) Execute(ctx context.Context) (int, error) {
	cycleStart := biztime.StartOfMonthUTC(biztime.NowUTC())
	n, err := j.ledger.ResetDue(ctx, cycleStart)
	if err != nil {
		return 0, err
	}
	metrics.TokenResets.Add(float64(n))
	return int(n), nil
}

const defaultSyncBatchSize = 100

// PlanSyncJob walks every account linked to a billing customer and syncs it.
// It stops early when the provider is down.
type PlanSyncJob struct {
	ledger    ledger.Repository
	sync      *Synchronizer
	batchSize int
	logger    logger.Interface
}

func NewPlanSyncJob(ledger ledger.Repository, sync *Synchronizer, batchSize int, logger logger.Interface) *PlanSyncJob {
	if batchSize <= 0 {
		batchSize = defaultSyncBatchSize
	}
	return &PlanSyncJob{ledger: ledger, sync: sync, batchSize: batchSize, logger: logger}
}

func (j *PlanSyncJob) Execute(ctx context.Context) (int, error) {
	var afterID uint
	synced := 0

	for {
		accounts, err := j.ledger.ListWithCustomer(ctx, afterID, j.batchSize)
		if err != nil {
			return synced, err
		}

		for _, a := range accounts {
			if err := ctx.Err(); err != nil {
				return synced, err
			}
			afterID = a.ID

			if _, err := j.sync.Sync(ctx, a.UserID); err != nil {
				if errors.Is(err, billing.ErrProviderUnavailable) {
					return synced, err
				}
				j.logger.Warnw("periodic plan sync failed", "user_id", a.UserID, "error", err)
				continue
			}
			synced++
		}

		if len(accounts) < j.batchSize {
			return synced, nil
		}
	}
}
