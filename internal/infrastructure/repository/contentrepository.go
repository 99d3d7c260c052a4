package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/domain/content"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/mappers"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type ContentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewContentRepository(db *gorm.DB, logger logger.Interface) content.Repository {
	return &ContentRepositoryImpl{db: db, logger: logger}
}

func (r *ContentRepositoryImpl) Create(ctx context.Context, c *content.GeneratedContent) error {
	model, err := mappers.ContentToModel(c)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to store generated content", "user_id", c.UserID, "feature", c.Feature, "error", err)
		return fmt.Errorf("failed to store generated content: %w", err)
	}
	c.ID = model.ID
	return nil
}

func (r *ContentRepositoryImpl) List(ctx context.Context, userID string, feature entitlement.FeatureID, offset, limit int) ([]*content.GeneratedContent, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.GeneratedContentModel{}).Where("user_id = ?", userID)
		if feature != "" {
			q = q.Where("feature = ?", feature.String())
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count generated content: %w", err)
	}

	var rows []*models.GeneratedContentModel
	if err := scoped().Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list generated content", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list generated content: %w", err)
	}

	out := make([]*content.GeneratedContent, 0, len(rows))
	for _, m := range rows {
		c, err := mappers.ContentToEntity(m)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, nil
}

func (r *ContentRepositoryImpl) Delete(ctx context.Context, userID, sid string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND sid = ?", userID, sid).Delete(&models.GeneratedContentModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete generated content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return content.ErrNotFound
	}
	return nil
}
