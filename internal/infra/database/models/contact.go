package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:text;not null"`
	Email   string    `gorm:"type:text;not null;index"`
	Phone   string    `gorm:"type:text;not null"`
	Company string    `gorm:"type:text"`
	Role    string    `gorm:"type:text"`
	CDate   time.Time `gorm:"type:timestamp with time zone;not null;autoCreateTime"`
	MDate   time.Time `gorm:"type:timestamp with time zone;not null;autoUpdateTime"`
}
