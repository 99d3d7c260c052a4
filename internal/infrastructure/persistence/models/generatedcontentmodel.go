package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type GeneratedContentModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50"`
	UserID    string `gorm:"not null;size:64;index:idx_content_user_feature,priority:1"`
	Feature   string `gorm:"not null;size:64;index:idx_content_user_feature,priority:2"`
	Title     string `gorm:"size:255"`
	Body      string `gorm:"type:text"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
}

func (GeneratedContentModel) TableName() string {
	return constants.TableGeneratedContents
}
