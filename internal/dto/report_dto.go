package dto

import "github.com/shopspring/decimal"

// ─── Dashboard ───────────────────────────────────────────────────────────────

type PaymentBreakdown struct {
	PaymentMethod string          `json:"payment_method"`
	CountSales    int             `json:"count_sales"`
	Total         decimal.Decimal `json:"total"`
}

type TopVariantItem struct {
	VariantID    string          `json:"variant_id"`
	VariantName  string          `json:"variant_name"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type DashboardTodayResponse struct {
	Day        string             `json:"day"`
	TotalSales int                `json:"total_sales"`
	GrossTotal decimal.Decimal    `json:"gross_total"`
	Breakdown  []PaymentBreakdown `json:"breakdown"`
	TopItems   []TopVariantItem   `json:"top_items"`
}

// ─── Low stock ───────────────────────────────────────────────────────────────

type LowStockItem struct {
	VariantID   string `json:"variant_id"`
	VariantName string `json:"variant_name"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	StockMin    int    `json:"stock_min"`
}
