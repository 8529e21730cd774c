package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/handler"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSaleService applies the same quantity checks as the real service so the
// handler tests can tell binding-layer rejections (422) apart from domain
// rejections (400).
type stubSaleService struct {
	called bool
}

var _ service.SaleService = (*stubSaleService)(nil)

func (s *stubSaleService) RecordSale(_ context.Context, _ *string, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	s.called = true
	if len(req.Items) == 0 {
		return nil, service.ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, service.ErrInvalidQuantity
		}
	}
	return &dto.SaleResponse{ID: uuid.NewString()}, nil
}

func (s *stubSaleService) GetSale(context.Context, uuid.UUID) (*dto.SaleResponse, error) {
	return nil, nil
}

func (s *stubSaleService) ListSales(context.Context, dto.SaleFilter) ([]dto.SaleResponse, error) {
	return nil, nil
}

func (s *stubSaleService) Receipt(context.Context, uuid.UUID) (string, error) { return "", nil }

func postSale(t *testing.T, svc service.SaleService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/sales", handler.NewSalesHandler(svc).RecordSale)

	req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// A zero quantity must clear request validation and get rejected by the
// service, so the client sees the domain error instead of a generic 422.
func TestRecordSale_ZeroQuantityReachesService(t *testing.T) {
	svc := &stubSaleService{}
	id := uuid.NewString()

	w := postSale(t, svc, `{"payment_method":"CASH","items":[{"variant_id":"`+id+`","quantity":0}]}`)

	require.True(t, svc.called, "request should pass validation and reach the service")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must be")
}

func TestRecordSale_MissingVariantIDFailsValidation(t *testing.T) {
	svc := &stubSaleService{}

	w := postSale(t, svc, `{"payment_method":"CASH","items":[{"quantity":2}]}`)

	assert.False(t, svc.called)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecordSale_ValidCartCreated(t *testing.T) {
	svc := &stubSaleService{}
	id := uuid.NewString()

	w := postSale(t, svc, `{"payment_method":"CASH","items":[{"variant_id":"`+id+`","quantity":2}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
}
