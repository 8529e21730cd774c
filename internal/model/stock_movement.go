package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a variant with before/after
// snapshots. Movements are write-once: never updated, never deleted.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Delta is signed: -2 for a sale of two units, +10 for a restock.
	Delta       int `gorm:"not null"`
	BeforeStock int `gorm:"not null"`
	AfterStock  int `gorm:"not null"`

	// Reason tags the cause, e.g. "sale:<id>" or "manual-adjust".
	Reason string  `gorm:"type:varchar(200)"`
	Actor  *string `gorm:"type:varchar(120)"`

	CreatedAt time.Time

	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}
