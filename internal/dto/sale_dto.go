package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	VariantID string `json:"variant_id" validate:"required,uuid"`
	// No validator tag: zero and negative quantities are rejected by the
	// sale service so they map to its invalid-quantity error, not a 422.
	Quantity int `json:"quantity"`
}

type RecordSaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH TRANSFER CARD_MP"`
	Items         []SaleItemRequest `json:"items"          validate:"dive"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Day           string `form:"day"`            // YYYY-MM-DD; empty = all
	PaymentMethod string `form:"payment_method"` // CASH | TRANSFER | CARD_MP
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	VariantID       string          `json:"variant_id"`
	VariantName     string          `json:"variant_name,omitempty"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unit_price_at_sale"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID              string             `json:"id"`
	PaymentMethod   string             `json:"payment_method"`
	DiscountPercent *decimal.Decimal   `json:"discount_percent"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Total           decimal.Decimal    `json:"total"`
	Items           []SaleItemResponse `json:"items"`
	CreatedAt       string             `json:"created_at"`
}
