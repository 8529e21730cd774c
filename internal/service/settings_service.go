package service

import (
	"context"
	"errors"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"

	"github.com/shopspring/decimal"
)

type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.StoreName != nil {
		settings.StoreName = trimmedName(req.StoreName)
	}
	if req.CashDiscountEnabled != nil {
		settings.CashDiscountEnabled = *req.CashDiscountEnabled
	}
	if req.CashDiscountPercent != nil {
		dp := *req.CashDiscountPercent
		if dp.IsNegative() || dp.GreaterThan(decimal.NewFromInt(100)) {
			return nil, errors.New("cash_discount_percent must be between 0 and 100")
		}
		settings.CashDiscountPercent = dp.Round(2)
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func settingsToResponse(s *model.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		StoreName:           s.StoreName,
		CashDiscountEnabled: s.CashDiscountEnabled,
		CashDiscountPercent: s.CashDiscountPercent,
	}
}
