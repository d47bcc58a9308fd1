package model

import (
	"time"

	"gorm.io/datatypes"
)

type Journey struct {
	UserId    string            `gorm:"type:varchar(64);primaryKey"`
	JourneyId string            `gorm:"type:varchar(64);primaryKey"`
	Notes     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

func (Journey) TableName() string {
	return "journeys"
}
