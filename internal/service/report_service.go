package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"

	"github.com/redis/go-redis/v9"
)

// dashboardCacheTTL keeps the today-dashboard payload hot for the POS
// front-end polling loop without hammering the aggregate queries.
const dashboardCacheTTL = 30 * time.Second

const dashboardCacheKey = "dashboard:today"

type ReportService interface {
	DashboardToday(ctx context.Context) (*dto.DashboardTodayResponse, error)
	LowStock(ctx context.Context) ([]dto.LowStockItem, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	variantRepo repository.VariantRepository
	rdb         *redis.Client
}

func NewReportService(saleRepo repository.SaleRepository, variantRepo repository.VariantRepository, rdb *redis.Client) ReportService {
	return &reportService{saleRepo: saleRepo, variantRepo: variantRepo, rdb: rdb}
}

func (s *reportService) DashboardToday(ctx context.Context) (*dto.DashboardTodayResponse, error) {
	// 1. Try Redis cache — best effort, a miss just means recompute.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardTodayResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	count, gross, err := s.saleRepo.CountAndGross(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totals, err := s.saleRepo.TotalsByPayment(ctx, from, to)
	if err != nil {
		return nil, err
	}
	breakdown := make([]dto.PaymentBreakdown, 0, len(totals))
	for _, row := range totals {
		breakdown = append(breakdown, dto.PaymentBreakdown{
			PaymentMethod: row.PaymentMethod,
			CountSales:    row.CountSales,
			Total:         row.Total,
		})
	}

	top, err := s.saleRepo.TopVariants(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}
	topItems := make([]dto.TopVariantItem, 0, len(top))
	for _, row := range top {
		topItems = append(topItems, dto.TopVariantItem{
			VariantID:    row.VariantID.String(),
			VariantName:  row.VariantName,
			ProductID:    row.ProductID.String(),
			ProductName:  row.ProductName,
			QuantitySold: row.Quantity,
			Revenue:      row.Revenue,
		})
	}

	resp := &dto.DashboardTodayResponse{
		Day:        from.Format("2006-01-02"),
		TotalSales: count,
		GrossTotal: gross,
		Breakdown:  breakdown,
		TopItems:   topItems,
	}

	// 2. Populate cache — ignore errors.
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *reportService) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	variants, err := s.variantRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItem, 0, len(variants))
	for _, v := range variants {
		if v.StockMin == nil {
			continue
		}
		item := dto.LowStockItem{
			VariantID:   v.ID.String(),
			VariantName: v.VariantName,
			ProductID:   v.ProductID.String(),
			Stock:       v.Stock,
			StockMin:    *v.StockMin,
		}
		if v.Product != nil {
			item.ProductName = v.Product.Name
		}
		items = append(items, item)
	}
	return items, nil
}
