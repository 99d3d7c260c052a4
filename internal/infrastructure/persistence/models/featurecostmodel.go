package models

import (
	"time"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type FeatureCostModel struct {
	Feature   string `gorm:"primaryKey;size:64"`
	TokenCost int    `gorm:"not null"`
	UpdatedBy string `gorm:"size:64"`
	UpdatedAt time.Time
}

func (FeatureCostModel) TableName() string {
	return constants.TableFeatureCosts
}
