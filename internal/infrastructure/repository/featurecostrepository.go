package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/featurecost"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type FeatureCostRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFeatureCostRepository(db *gorm.DB, logger logger.Interface) featurecost.Repository {
	return &FeatureCostRepositoryImpl{db: db, logger: logger}
}

func (r *FeatureCostRepositoryImpl) List(ctx context.Context) ([]featurecost.Override, error) {
	var rows []models.FeatureCostModel
	if err := r.db.WithContext(ctx).Order("feature").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list feature costs", "error", err)
		return nil, fmt.Errorf("failed to list feature costs: %w", err)
	}
	out := make([]featurecost.Override, 0, len(rows))
	for _, m := range rows {
		out = append(out, featurecost.Override{
			Feature:   entitlement.FeatureID(m.Feature),
			TokenCost: m.TokenCost,
			UpdatedBy: m.UpdatedBy,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}

func (r *FeatureCostRepositoryImpl) Upsert(ctx context.Context, o featurecost.Override) error {
	model := models.FeatureCostModel{
		Feature:   o.Feature.String(),
		TokenCost: o.TokenCost,
		UpdatedBy: o.UpdatedBy,
		UpdatedAt: o.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feature"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_cost", "updated_by", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert feature cost", "feature", o.Feature, "error", err)
		return fmt.Errorf("failed to upsert feature cost: %w", err)
	}
	return nil
}

func (r *FeatureCostRepositoryImpl) Delete(ctx context.Context, feature entitlement.FeatureID) error {
	if err := r.db.WithContext(ctx).Delete(&models.FeatureCostModel{}, "feature = ?", feature.String()).Error; err != nil {
		r.logger.Errorw("failed to delete feature cost", "feature", feature, "error", err)
		return fmt.Errorf("failed to delete feature cost: %w", err)
	}
	return nil
}
