package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product groups purchasable variants under one display name.
// Products are never hard-deleted: Active=false hides them from the catalog
// while historical SaleItems keep resolving.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"uniqueIndex;not null"`
	Category *string   `gorm:"index"`
	Active   bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductVariant is the unit that carries price and stock (e.g. "Talle XL").
// Stock may never go below zero; the sale transaction enforces this both at
// validation time and again at decrement time.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`

	VariantName string  `gorm:"not null"`
	SKU         *string `gorm:"type:varchar(60);column:sku"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock int             `gorm:"not null;default:0;check:chk_variant_stock,stock >= 0"`
	// StockMin, when set, puts the variant on the low-stock report once
	// stock <= stock_min.
	StockMin *int
	Active   bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
