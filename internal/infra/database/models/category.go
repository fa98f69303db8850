package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title string    `gorm:"type:text;not null"`
	CDate time.Time `gorm:"type:timestamp with time zone;not null;autoCreateTime"`
	MDate time.Time `gorm:"type:timestamp with time zone;not null;autoUpdateTime"`
}
