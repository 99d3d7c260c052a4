package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type UsageLogModel struct {
	ID         uint   `gorm:"primarykey"`
	UserID     string `gorm:"not null;size:64;index:idx_usage_user_created,priority:1"`
	Action     string `gorm:"not null;size:64"`
	Feature    string `gorm:"not null;size:64;index"`
	TokensUsed int    `gorm:"not null"`
	Metadata   datatypes.JSON
	CreatedAt  time.Time `gorm:"index:idx_usage_user_created,priority:2"`
}

func (UsageLogModel) TableName() string {
	return constants.TableUsageLogs
}
