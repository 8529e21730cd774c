package dto

import "github.com/shopspring/decimal"

// ─── Product ─────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name     string  `json:"name"     validate:"required,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=120"`
	Active   *bool   `json:"active"`
}

type UpdateProductRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=120"`
	Active   *bool   `json:"active"`
}

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   string `form:"active"` // "true" | "false" | "" (all)
}

type ProductResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category *string           `json:"category"`
	Active   bool              `json:"active"`
	Variants []VariantResponse `json:"variants"`
}

// ─── Variant ─────────────────────────────────────────────────────────────────

type CreateVariantRequest struct {
	VariantName string          `json:"variant_name" validate:"required,min=1,max=120"`
	SKU         *string         `json:"sku"          validate:"omitempty,max=60"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
	Stock       int             `json:"stock"        validate:"min=0"`
	StockMin    *int            `json:"stock_min"    validate:"omitempty,min=0"`
}

type UpdateVariantRequest struct {
	VariantName *string          `json:"variant_name" validate:"omitempty,min=1,max=120"`
	SKU         *string          `json:"sku"          validate:"omitempty,max=60"`
	Price       *decimal.Decimal `json:"price"`
	StockMin    *int             `json:"stock_min"    validate:"omitempty,min=0"`
	Active      *bool            `json:"active"`
}

// AdjustStockRequest is a manual stock correction (restock, breakage, count).
// Delta is signed; the adjustment is rejected if it would leave stock < 0.
type AdjustStockRequest struct {
	Delta  int     `json:"delta"  validate:"required"`
	Reason string  `json:"reason" validate:"required,min=3,max=200"`
	Actor  *string `json:"actor"  validate:"omitempty,max=120"`
}

type VariantResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	VariantName string          `json:"variant_name"`
	SKU         *string         `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	StockMin    *int            `json:"stock_min"`
	Active      bool            `json:"active"`
}
