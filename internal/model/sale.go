package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
	PaymentCardMP   = "CARD_MP"
)

// Sale is an immutable transaction record. Once committed, neither the sale
// nor its items are ever updated — they are the audit trail of what was sold
// and at what price, independent of later price changes on the variant.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"index;not null"`

	PaymentMethod string `gorm:"type:varchar(20);not null"`

	// DiscountPercent is the percentage actually applied to this sale.
	// Nil when no discount applied (non-CASH payment or discount disabled).
	DiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one consolidated line of a sale. The variant reference is
// non-owning: deactivating the variant later does not touch past sales.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`

	Quantity int `gorm:"not null"`
	// UnitPriceAtSale freezes the variant price at the moment of the sale.
	UnitPriceAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}
