package dto

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	StoreName           *string          `json:"store_name"            validate:"omitempty,max=120"`
	CashDiscountEnabled *bool            `json:"cash_discount_enabled"`
	CashDiscountPercent *decimal.Decimal `json:"cash_discount_percent"`
}

type SettingsResponse struct {
	StoreName           *string         `json:"store_name"`
	CashDiscountEnabled bool            `json:"cash_discount_enabled"`
	CashDiscountPercent decimal.Decimal `json:"cash_discount_percent"`
}
