package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/mappers"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
	"github.com/creatorhub/creatorhub/internal/shared/db"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// LedgerRepositoryImpl stores accounts in the subscriptions table. Balance
// changes are single conditional UPDATE statements so concurrent requests
// coordinate through the database row, not through process memory.
type LedgerRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewLedgerRepository(db *gorm.DB, logger logger.Interface) ledger.Repository {
	return &LedgerRepositoryImpl{db: db, logger: logger}
}

func (r *LedgerRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *LedgerRepositoryImpl) Ensure(ctx context.Context, userID, email string) (*ledger.Account, error) {
	model := mappers.AccountToModel(ledger.NewDefaultAccount(userID, email, biztime.NowUTC()))

	err := r.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to ensure ledger account", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to ensure ledger account: %w", err)
	}

	return r.Get(ctx, userID)
}

func (r *LedgerRepositoryImpl) Get(ctx context.Context, userID string) (*ledger.Account, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *LedgerRepositoryImpl) GetForUpdate(ctx context.Context, userID string) (*ledger.Account, error) {
	var model models.SubscriptionModel
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		r.logger.Errorw("failed to lock ledger account", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to lock ledger account: %w", err)
	}
	return mappers.AccountToEntity(&model)
}

func (r *LedgerRepositoryImpl) FindByCustomerRef(ctx context.Context, customerRef string) (*ledger.Account, error) {
	if customerRef == "" {
		return nil, ledger.ErrAccountNotFound
	}
	return r.findOne(ctx, "billing_customer_ref = ?", customerRef)
}

func (r *LedgerRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*ledger.Account, error) {
	var model models.SubscriptionModel
	if err := r.conn(ctx).Where(query, arg).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		r.logger.Errorw("failed to load ledger account", "query", query, "error", err)
		return nil, fmt.Errorf("failed to load ledger account: %w", err)
	}
	return mappers.AccountToEntity(&model)
}

func (r *LedgerRepositoryImpl) TryDeduct(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, ledger.ErrInvalidAmount
	}
	if amount == 0 {
		return r.balance(r.conn(ctx), userID)
	}

	var newBalance int
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SubscriptionModel{}).
			Where("user_id = ? AND tokens_remaining >= ?", userID, amount).
			UpdateColumns(map[string]any{
				"tokens_remaining": gorm.Expr("tokens_remaining - ?", amount),
				"updated_at":       biztime.NowUTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to deduct tokens: %w", res.Error)
		}

		balance, err := r.balance(tx, userID)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return &ledger.InsufficientBalanceError{Required: amount, Available: balance}
		}
		newBalance = balance
		return nil
	})
	if err != nil {
		if !errors.Is(err, ledger.ErrInsufficientBalance) && !errors.Is(err, ledger.ErrAccountNotFound) {
			r.logger.Errorw("token deduction failed", "user_id", userID, "amount", amount, "error", err)
		}
		return 0, err
	}

	return newBalance, nil
}

func (r *LedgerRepositoryImpl) Refund(ctx context.Context, userID string, amount int) (int, error) {
	if amount < 0 {
		return 0, ledger.ErrInvalidAmount
	}
	if amount == 0 {
		return r.balance(r.conn(ctx), userID)
	}

	var newBalance int
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SubscriptionModel{}).
			Where("user_id = ?", userID).
			UpdateColumns(map[string]any{
				"tokens_remaining": gorm.Expr("tokens_remaining + ?", amount),
				"updated_at":       biztime.NowUTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to refund tokens: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ledger.ErrAccountNotFound
		}
		balance, err := r.balance(tx, userID)
		newBalance = balance
		return err
	})
	if err != nil {
		r.logger.Errorw("token refund failed", "user_id", userID, "amount", amount, "error", err)
		return 0, err
	}

	return newBalance, nil
}

func (r *LedgerRepositoryImpl) balance(tx *gorm.DB, userID string) (int, error) {
	var model models.SubscriptionModel
	if err := tx.Select("tokens_remaining").Where("user_id = ?", userID).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ledger.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to read token balance: %w", err)
	}
	return model.TokensRemaining, nil
}

func (r *LedgerRepositoryImpl) ResetToLimit(ctx context.Context, userID string) error {
	now := biztime.NowUTC()
	res := r.conn(ctx).Model(&models.SubscriptionModel{}).
		Where("user_id = ?", userID).
		UpdateColumns(map[string]any{
			"tokens_remaining": gorm.Expr("tokens_monthly_limit"),
			"tokens_reset_at":  now,
			"updated_at":       now,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to reset token balance", "user_id", userID, "error", res.Error)
		return fmt.Errorf("failed to reset token balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (r *LedgerRepositoryImpl) ResetDue(ctx context.Context, cycleStart time.Time) (int64, error) {
	now := biztime.NowUTC()
	res := r.conn(ctx).Model(&models.SubscriptionModel{}).
		Where("tokens_reset_at < ?", cycleStart).
		UpdateColumns(map[string]any{
			"tokens_remaining": gorm.Expr("tokens_monthly_limit"),
			"tokens_reset_at":  now,
			"updated_at":       now,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to reset due balances", "cycle_start", cycleStart, "error", res.Error)
		return 0, fmt.Errorf("failed to reset due balances: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SetPlan applies a plan transition guarded by the plan the caller observed.
// The monthly limit always follows the plan; the balance moves only when
// ResetBalance is set.
func (r *LedgerRepositoryImpl) SetPlan(ctx context.Context, cmd ledger.SetPlanCommand) (*ledger.Account, error) {
	now := biztime.NowUTC()
	updates := map[string]any{
		"plan":                     cmd.Plan.String(),
		"tokens_monthly_limit":     cmd.Plan.MonthlyTokenLimit(),
		"plan_expiry":              cmd.Expiry,
		"billing_subscription_ref": nullable(cmd.SubscriptionRef),
		"plan_synced_at":           cmd.SyncedAt,
		"updated_at":               now,
	}
	if cmd.CustomerRef != "" {
		updates["billing_customer_ref"] = cmd.CustomerRef
	}
	if cmd.ResetBalance {
		updates["tokens_remaining"] = cmd.Plan.MonthlyTokenLimit()
		updates["tokens_reset_at"] = now
	}

	var account *ledger.Account
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SubscriptionModel{}).
			Where("user_id = ? AND plan = ?", cmd.UserID, cmd.ExpectedPlan.String()).
			UpdateColumns(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to set plan: %w", res.Error)
		}

		var model models.SubscriptionModel
		if err := tx.Where("user_id = ?", cmd.UserID).Take(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrAccountNotFound
			}
			return fmt.Errorf("failed to reload account: %w", err)
		}
		// MySQL reports zero rows when the new values equal the old ones, so
		// only a differing plan means the compare-and-set lost.
		if res.RowsAffected == 0 && model.Plan != cmd.ExpectedPlan.String() {
			return ledger.ErrPlanChanged
		}

		a, err := mappers.AccountToEntity(&model)
		account = a
		return err
	})
	if err != nil {
		if !errors.Is(err, ledger.ErrPlanChanged) {
			r.logger.Errorw("failed to set plan", "user_id", cmd.UserID, "plan", cmd.Plan, "error", err)
		}
		return nil, err
	}

	r.logger.Infow("plan updated",
		"user_id", cmd.UserID,
		"from", cmd.ExpectedPlan,
		"to", cmd.Plan,
		"balance_reset", cmd.ResetBalance,
	)
	return account, nil
}

func (r *LedgerRepositoryImpl) AttachCustomer(ctx context.Context, userID, customerRef string) error {
	res := r.conn(ctx).Model(&models.SubscriptionModel{}).
		Where("user_id = ?", userID).
		UpdateColumns(map[string]any{"billing_customer_ref": customerRef, "updated_at": biztime.NowUTC()})
	if res.Error != nil {
		r.logger.Errorw("failed to attach billing customer", "user_id", userID, "error", res.Error)
		return fmt.Errorf("failed to attach billing customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (r *LedgerRepositoryImpl) ListWithCustomer(ctx context.Context, afterID uint, limit int) ([]*ledger.Account, error) {
	var rows []*models.SubscriptionModel
	err := r.conn(ctx).
		Where("billing_customer_ref IS NOT NULL AND billing_customer_ref <> '' AND id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list billing accounts", "after_id", afterID, "error", err)
		return nil, fmt.Errorf("failed to list billing accounts: %w", err)
	}

	out := make([]*ledger.Account, 0, len(rows))
	for _, m := range rows {
		a, err := mappers.AccountToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
