package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/infrastructure/persistence/models"
	"github.com/creatorhub/creatorhub/internal/shared/biztime"
)

type BillingEventRepositoryImpl struct {
	db *gorm.DB
}

func NewBillingEventRepository(db *gorm.DB) billing.EventLog {
	return &BillingEventRepositoryImpl{db: db}
}

// MarkProcessed inserts the event id; a conflicting insert affects no rows,
// which is how a redelivery is recognised.
func (r *BillingEventRepositoryImpl) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&models.ProcessedBillingEventModel{
			EventID:     eventID,
			EventType:   eventType,
			ProcessedAt: biztime.NowUTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to record billing event: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *BillingEventRepositoryImpl) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var m models.ProcessedBillingEventModel
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up billing event: %w", err)
	}
	return true, nil
}
