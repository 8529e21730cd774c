package repository

import (
	"context"

	"github.com/LisandroRios/GestionDeVentas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementRepository appends to the inventory audit trail.
// Movements are write-once: there is deliberately no Update or Delete.
type StockMovementRepository interface {
	// CreateTx appends a movement inside an open transaction.
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	Create(ctx context.Context, m *model.StockMovement) error
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]model.StockMovement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movementRepo) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
