package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/usage"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/mappers"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/db"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type UsageLogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageLogRepository(db *gorm.DB, logger logger.Interface) usage.Repository {
	return &UsageLogRepositoryImpl{db: db, logger: logger}
}

func (r *UsageLogRepositoryImpl) Append(ctx context.Context, entry *usage.Entry) error {
	model, err := mappers.UsageEntryToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append usage log: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *UsageLogRepositoryImpl) scoped(ctx context.Context, f usage.Filter) *gorm.DB {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.UsageLogModel{}).Where("user_id = ?", f.UserID)
	if f.Feature != "" {
		q = q.Where("feature = ?", f.Feature.String())
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	return q
}

func (r *UsageLogRepositoryImpl) List(ctx context.Context, filter usage.Filter) ([]*usage.Entry, int64, error) {
	var total int64
	if err := r.scoped(ctx, filter).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count usage logs", "user_id", filter.UserID, "error", err)
		return nil, 0, fmt.Errorf("failed to count usage logs: %w", err)
	}

	var rows []*models.UsageLogModel
	q := r.scoped(ctx, filter).Order("created_at DESC, id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list usage logs", "user_id", filter.UserID, "error", err)
		return nil, 0, fmt.Errorf("failed to list usage logs: %w", err)
	}

	out := make([]*usage.Entry, 0, len(rows))
	for _, m := range rows {
		e, err := mappers.UsageEntryToEntity(m)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, nil
}

func (r *UsageLogRepositoryImpl) Summarize(ctx context.Context, userID string, from, to time.Time) ([]usage.FeatureSummary, error) {
	var rows []struct {
		Feature    string
		Actions    int64
		TokensUsed int64
	}
	err := r.scoped(ctx, usage.Filter{UserID: userID, From: from, To: to}).
		Select("feature, COUNT(*) AS actions, COALESCE(SUM(tokens_used), 0) AS tokens_used").
		Group("feature").
		Order("feature").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to summarize usage", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}

	out := make([]usage.FeatureSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, usage.FeatureSummary{
			Feature:    entitlement.FeatureID(row.Feature),
			Actions:    row.Actions,
			TokensUsed: row.TokensUsed,
		})
	}
	return out, nil
}
