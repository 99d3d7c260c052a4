package models

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type ProcessedBillingEventModel struct {
	EventID     string `gorm:"primaryKey;size:255"`
	EventType   string `gorm:"size:100"`
	ProcessedAt time.Time
}

func (ProcessedBillingEventModel) TableName() string {
	return constants.TableProcessedBillingEvents
}
