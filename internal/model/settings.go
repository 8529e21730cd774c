package model

import "github.com/shopspring/decimal"

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Settings is the store-wide configuration. Exactly one row exists (id=1);
// SettingsRepository.GetOrCreate materializes it on first read.
type Settings struct {
	ID int `gorm:"primaryKey"`

	StoreName *string `gorm:"type:varchar(120)"`

	CashDiscountEnabled bool            `gorm:"not null;default:false"`
	CashDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}
