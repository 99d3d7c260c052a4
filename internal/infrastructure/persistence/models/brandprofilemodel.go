package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

type BrandProfileModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50"`
	UserID    string `gorm:"not null;size:64;index"`
	Name      string `gorm:"not null;size:100"`
	Niche     string `gorm:"size:100"`
	Tone      string `gorm:"size:100"`
	Colors    datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BrandProfileModel) TableName() string {
	return constants.TableBrandProfiles
}
