package repository

import (
	"context"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRepository interface {
	CreateSession(ctx context.Context, s *model.CashSession) error
	// FindOpen returns the session with a NULL closed_at, or
	// gorm.ErrRecordNotFound when no register shift is active.
	FindOpen(ctx context.Context) (*model.CashSession, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	UpdateSession(ctx context.Context, s *model.CashSession) error
	History(ctx context.Context, filter dto.CashHistoryFilter) ([]model.CashSession, error)
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) CreateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashRepo) FindOpen(ctx context.Context) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).
		Where("closed_at IS NULL").
		Order("opened_at DESC").
		First(&s).Error
	return &s, err
}

func (r *cashRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *cashRepo) UpdateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cashRepo) History(ctx context.Context, filter dto.CashHistoryFilter) ([]model.CashSession, error) {
	var sessions []model.CashSession

	q := r.db.WithContext(ctx).Model(&model.CashSession{})

	if filter.OnlyClosed == nil || *filter.OnlyClosed {
		q = q.Where("closed_at IS NOT NULL")
	}
	if filter.Day != "" {
		if day, err := time.Parse("2006-01-02", filter.Day); err == nil {
			q = q.Where("opened_at >= ? AND opened_at < ?", day, day.AddDate(0, 0, 1))
		}
	}

	err := q.Order("opened_at DESC").Find(&sessions).Error
	return sessions, err
}
