package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description   string          `gorm:"type:text;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date          time.Time       `gorm:"type:timestamp with time zone;not null;index"`
	PaymentMethod string          `gorm:"type:text;not null"`
	Categories    []Category      `gorm:"many2many:expense_categories;constraint:OnDelete:CASCADE;"`
	CDate         time.Time       `gorm:"type:timestamp with time zone;not null;autoCreateTime"`
	MDate         time.Time       `gorm:"type:timestamp with time zone;not null;autoUpdateTime"`
}
