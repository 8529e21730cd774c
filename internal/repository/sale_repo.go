package repository

import (
	"context"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentTotalRow is one GROUP BY payment_method aggregate.
type PaymentTotalRow struct {
	PaymentMethod string
	CountSales    int
	Total         decimal.Decimal
}

// TopVariantRow is one row of the top-sellers aggregate.
type TopVariantRow struct {
	VariantID   uuid.UUID
	VariantName string
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error)

	// SumTotalsSince adds up sale totals recorded at or after t. The cash
	// session close uses this as its notion of "expected" — it must stay in
	// lockstep with the totals RecordSale writes.
	SumTotalsSince(ctx context.Context, t time.Time) (decimal.Decimal, error)

	CountAndGross(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error)
	TotalsByPayment(ctx context.Context, from, to time.Time) ([]PaymentTotalRow, error)
	TopVariants(ctx context.Context, from, to time.Time, limit int) ([]TopVariantRow, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Variant.Product").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale

	q := r.db.WithContext(ctx).Model(&model.Sale{}).Preload("Items.Variant.Product")

	if filter.Day != "" {
		if day, err := time.Parse("2006-01-02", filter.Day); err == nil {
			q = q.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
		}
	}
	if filter.PaymentMethod != "" {
		q = q.Where("payment_method = ?", filter.PaymentMethod)
	}

	err := q.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SumTotalsSince(ctx context.Context, t time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ?", t).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *saleRepo) CountAndGross(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to)
	if err := q.Count(&count).Error; err != nil {
		return 0, decimal.Zero, err
	}

	var gross decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&gross).Error
	return int(count), gross, err
}

func (r *saleRepo) TotalsByPayment(ctx context.Context, from, to time.Time) ([]PaymentTotalRow, error) {
	var rows []PaymentTotalRow
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("payment_method, COUNT(id) AS count_sales, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) TopVariants(ctx context.Context, from, to time.Time, limit int) ([]TopVariantRow, error) {
	var rows []TopVariantRow
	err := r.db.WithContext(ctx).
		Table("sale_items").
		Select(`sale_items.variant_id,
			product_variants.variant_name,
			products.id AS product_id,
			products.name AS product_name,
			SUM(sale_items.quantity) AS quantity,
			COALESCE(SUM(sale_items.line_total), 0) AS revenue`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN product_variants ON product_variants.id = sale_items.variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", from, to).
		Group("sale_items.variant_id, product_variants.variant_name, products.id, products.name").
		Order("SUM(sale_items.quantity) DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
