package repository

import (
	"context"
	"sort"

	"github.com/LisandroRios/GestionDeVentas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VariantRepository defines the data access contract for product variants,
// including the row-locking primitives the sale transaction depends on.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type VariantRepository interface {
	Create(ctx context.Context, v *model.ProductVariant) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductVariant, error)
	Update(ctx context.Context, v *model.ProductVariant) error

	// LockForUpdate acquires FOR UPDATE row locks on every id in the set and
	// returns the locked rows keyed by id. Rows are locked in ascending id
	// order so two overlapping sales always contend in the same order.
	// Missing ids are simply absent from the returned map.
	LockForUpdate(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*model.ProductVariant, error)

	// DecrementStockTx subtracts qty from the variant's stock with a guard
	// against going negative. Returns false (and no error) when the guard
	// rejected the update.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)

	// UpdateStockTx applies a signed delta without the non-negative guard.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// FindLowStock returns active variants with stock_min set and
	// stock <= stock_min, worst first.
	FindLowStock(ctx context.Context) ([]model.ProductVariant, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepository(db *gorm.DB) VariantRepository { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *model.ProductVariant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *variantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&variants).Error
	return variants, err
}

func (r *variantRepo) Update(ctx context.Context, v *model.ProductVariant) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *variantRepo) LockForUpdate(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*model.ProductVariant, error) {
	// Deterministic lock order prevents deadlocks between overlapping sales.
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	var variants []model.ProductVariant
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sorted).
		Order("id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	locked := make(map[uuid.UUID]*model.ProductVariant, len(variants))
	for i := range variants {
		locked[variants[i].ID] = &variants[i]
	}
	return locked, nil
}

func (r *variantRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	// The stock >= qty guard re-verifies non-negativity at write time, on top
	// of the validation done against the locked row.
	res := tx.Model(&model.ProductVariant{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *variantRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.ProductVariant{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *variantRepo) FindLowStock(ctx context.Context) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("active = true AND stock_min IS NOT NULL AND stock <= stock_min").
		Order("stock ASC").
		Find(&variants).Error
	return variants, err
}

func (r *variantRepo) DB() *gorm.DB { return r.db }
