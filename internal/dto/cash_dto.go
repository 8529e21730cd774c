package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenCashRequest struct {
	OpenedBy      *string         `json:"opened_by"      validate:"omitempty,max=80"`
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

type CloseCashRequest struct {
	ClosedBy      *string         `json:"closed_by"      validate:"omitempty,max=80"`
	ClosingAmount decimal.Decimal `json:"closing_amount" validate:"min=0"`
}

// CashHistoryFilter is bound from the query string of GET /v1/cash/history.
type CashHistoryFilter struct {
	Day        string `form:"day"` // YYYY-MM-DD; empty = all
	OnlyClosed *bool  `form:"only_closed"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashSessionResponse struct {
	ID            string          `json:"id"`
	OpenedAt      string          `json:"opened_at"`
	OpenedBy      *string         `json:"opened_by"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`

	ClosedAt      *string          `json:"closed_at"`
	ClosedBy      *string          `json:"closed_by"`
	ClosingAmount *decimal.Decimal `json:"closing_amount"`

	ExpectedAmount   *decimal.Decimal `json:"expected_amount"`
	DifferenceAmount *decimal.Decimal `json:"difference_amount"`
	Open             bool             `json:"open"`
}
