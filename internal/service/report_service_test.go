package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardToday_CountsOnlyToday(t *testing.T) {
	saleRepo := newStubSaleRepo()
	variantRepo := newStubVariantRepo()
	svc := service.NewReportService(saleRepo, variantRepo, nil)

	now := time.Now()
	require.NoError(t, saleRepo.Create(context.Background(), nil, &model.Sale{
		PaymentMethod: model.PaymentCash,
		Total:         decimal.RequireFromString("150.00"),
		CreatedAt:     now,
	}))
	require.NoError(t, saleRepo.Create(context.Background(), nil, &model.Sale{
		PaymentMethod: model.PaymentTransfer,
		Total:         decimal.RequireFromString("80.00"),
		CreatedAt:     now.AddDate(0, 0, -1),
	}))

	resp, err := svc.DashboardToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalSales)
	assert.Equal(t, "150", resp.GrossTotal.String())
	assert.Equal(t, now.Format("2006-01-02"), resp.Day)
}

func TestLowStock_OnlyActiveAtOrBelowThreshold(t *testing.T) {
	saleRepo := newStubSaleRepo()
	variantRepo := newStubVariantRepo()
	svc := service.NewReportService(saleRepo, variantRepo, nil)

	min2, min5 := 2, 5

	low := seedVariantIn(variantRepo, "Low", "10.00", 2)
	low.StockMin = &min2 // stock == min → alert

	fine := seedVariantIn(variantRepo, "Fine", "10.00", 8)
	fine.StockMin = &min5 // above min → no alert

	seedVariantIn(variantRepo, "No threshold", "10.00", 0) // StockMin nil

	inactive := seedVariantIn(variantRepo, "Inactive", "10.00", 0)
	inactive.StockMin = &min2
	inactive.Active = false

	items, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Low", items[0].VariantName)
	assert.Equal(t, 2, items[0].Stock)
	assert.Equal(t, 2, items[0].StockMin)
}
