package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/domain/brand"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/mappers"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/db"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type BrandProfileRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBrandProfileRepository(db *gorm.DB, logger logger.Interface) brand.Repository {
	return &BrandProfileRepositoryImpl{db: db, logger: logger}
}

func (r *BrandProfileRepositoryImpl) Create(ctx context.Context, profile *brand.BrandProfile) error {
	model, err := mappers.BrandProfileToModel(profile)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create brand profile", "user_id", profile.UserID(), "error", err)
		return fmt.Errorf("failed to create brand profile: %w", err)
	}
	profile.SetID(model.ID)
	return nil
}

func (r *BrandProfileRepositoryImpl) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.BrandProfileModel{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count brand profiles: %w", err)
	}
	return n, nil
}

func (r *BrandProfileRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*brand.BrandProfile, error) {
	var rows []*models.BrandProfileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list brand profiles", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list brand profiles: %w", err)
	}
	out := make([]*brand.BrandProfile, 0, len(rows))
	for _, m := range rows {
		p, err := mappers.BrandProfileToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *BrandProfileRepositoryImpl) GetBySID(ctx context.Context, userID, sid string) (*brand.BrandProfile, error) {
	var m models.BrandProfileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ? AND sid = ?", userID, sid).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, brand.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand profile: %w", err)
	}
	return mappers.BrandProfileToEntity(&m)
}

func (r *BrandProfileRepositoryImpl) Delete(ctx context.Context, userID, sid string) error {
	res := db.GetTxFromContext(ctx, r.db).Where("user_id = ? AND sid = ?", userID, sid).Delete(&models.BrandProfileModel{})
	if res.Error != nil {
		r.logger.Errorw("failed to delete brand profile", "sid", sid, "error", res.Error)
		return fmt.Errorf("failed to delete brand profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return brand.ErrNotFound
	}
	return nil
}
