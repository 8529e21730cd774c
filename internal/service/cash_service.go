package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"

	"gorm.io/gorm"
)

type CashService interface {
	Open(ctx context.Context, req dto.OpenCashRequest) (*dto.CashSessionResponse, error)
	Close(ctx context.Context, req dto.CloseCashRequest) (*dto.CashSessionResponse, error)
	Current(ctx context.Context) (*dto.CashSessionResponse, error)
	History(ctx context.Context, filter dto.CashHistoryFilter) ([]dto.CashSessionResponse, error)
}

type cashService struct {
	repo     repository.CashRepository
	saleRepo repository.SaleRepository
}

func NewCashService(repo repository.CashRepository, saleRepo repository.SaleRepository) CashService {
	return &cashService{repo: repo, saleRepo: saleRepo}
}

// Open starts a register shift. At most one session may be open system-wide.
func (s *cashService) Open(ctx context.Context, req dto.OpenCashRequest) (*dto.CashSessionResponse, error) {
	_, err := s.repo.FindOpen(ctx)
	if err == nil {
		return nil, ErrCashSessionAlreadyOpen
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cash session lookup: %w", err)
	}

	session := &model.CashSession{
		OpenedAt:      time.Now().UTC(),
		OpenedBy:      trimmedName(req.OpenedBy),
		OpeningAmount: req.OpeningAmount.Round(2),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

// Close ends the open shift. Expected and difference amounts are computed
// once, from the same sale totals RecordSale writes, and snapshotted onto
// the session row — they are never recomputed afterwards.
func (s *cashService) Close(ctx context.Context, req dto.CloseCashRequest) (*dto.CashSessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenCashSession
		}
		return nil, fmt.Errorf("cash session lookup: %w", err)
	}

	salesSum, err := s.saleRepo.SumTotalsSince(ctx, session.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("sales sum: %w", err)
	}

	expected := session.OpeningAmount.Add(salesSum).Round(2)
	closing := req.ClosingAmount.Round(2)
	difference := closing.Sub(expected).Round(2)

	now := time.Now().UTC()
	session.ClosedAt = &now
	session.ClosedBy = trimmedName(req.ClosedBy)
	session.ClosingAmount = &closing
	session.ExpectedAmount = &expected
	session.DifferenceAmount = &difference

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *cashService) Current(ctx context.Context) (*dto.CashSessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenCashSession
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *cashService) History(ctx context.Context, filter dto.CashHistoryFilter) ([]dto.CashSessionResponse, error) {
	sessions, err := s.repo.History(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

func trimmedName(name *string) *string {
	if name == nil {
		return nil
	}
	t := strings.TrimSpace(*name)
	if t == "" {
		return nil
	}
	return &t
}

func sessionToResponse(s *model.CashSession) *dto.CashSessionResponse {
	resp := &dto.CashSessionResponse{
		ID:            s.ID.String(),
		OpenedAt:      s.OpenedAt.UTC().Format(time.RFC3339),
		OpenedBy:      s.OpenedBy,
		OpeningAmount: s.OpeningAmount,
		ClosedBy:      s.ClosedBy,
		ClosingAmount: s.ClosingAmount,

		ExpectedAmount:   s.ExpectedAmount,
		DifferenceAmount: s.DifferenceAmount,
		Open:             s.IsOpen(),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
