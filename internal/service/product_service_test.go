package service_test

import (
	"context"
	"testing"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	svc          service.ProductService
	productRepo  *stubProductRepo
	variantRepo  *stubVariantRepo
	movementRepo *stubMovementRepo
}

func newProductFixture() *productFixture {
	f := &productFixture{
		productRepo:  newStubProductRepo(),
		variantRepo:  newStubVariantRepo(),
		movementRepo: &stubMovementRepo{},
	}
	f.productRepo.variants = f.variantRepo
	f.svc = service.NewProductService(f.productRepo, f.variantRepo, f.movementRepo)
	return f
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{Name: "Coca Cola"})
	require.NoError(t, err)

	// Same name again, with surrounding whitespace.
	_, err = f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{Name: "  Coca Cola "})
	assert.ErrorContains(t, err, "already exists")
}

func TestCreateVariant_DuplicatePerProduct(t *testing.T) {
	f := newProductFixture()

	p, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{Name: "Coca Cola"})
	require.NoError(t, err)
	productID := uuid.MustParse(p.ID)

	_, err = f.svc.CreateVariant(context.Background(), productID, dto.CreateVariantRequest{
		VariantName: "355ml",
		Price:       decimal.RequireFromString("150.00"),
		Stock:       10,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateVariant(context.Background(), productID, dto.CreateVariantRequest{
		VariantName: "355ml",
		Price:       decimal.RequireFromString("140.00"),
	})
	assert.ErrorContains(t, err, "already exists")
}

func TestAdjustStock_PositiveAndNegative(t *testing.T) {
	f := newProductFixture()
	actor := "admin"
	v := seedVariantIn(f.variantRepo, "Pack 6", "800.00", 10)

	resp, err := f.svc.AdjustStock(context.Background(), v.ID, dto.AdjustStockRequest{
		Delta:  5,
		Reason: "restock delivery",
		Actor:  &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	resp, err = f.svc.AdjustStock(context.Background(), v.ID, dto.AdjustStockRequest{
		Delta:  -3,
		Reason: "breakage",
		Actor:  &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)

	require.Len(t, f.movementRepo.movements, 2)
	assert.Equal(t, "manual-adjust: restock delivery", f.movementRepo.movements[0].Reason)
	assert.Equal(t, 10, f.movementRepo.movements[0].BeforeStock)
	assert.Equal(t, 15, f.movementRepo.movements[0].AfterStock)
	assert.Equal(t, -3, f.movementRepo.movements[1].Delta)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	f := newProductFixture()
	v := seedVariantIn(f.variantRepo, "Lone item", "99.00", 2)

	_, err := f.svc.AdjustStock(context.Background(), v.ID, dto.AdjustStockRequest{
		Delta:  -5,
		Reason: "inventory count",
	})

	var wouldGoNeg *service.StockWouldGoNegativeError
	require.ErrorAs(t, err, &wouldGoNeg)
	assert.Equal(t, v.ID, wouldGoNeg.VariantID)
	assert.Equal(t, 2, f.variantRepo.variants[v.ID].Stock)
	assert.Empty(t, f.movementRepo.movements)
}

func TestAdjustStock_VariantNotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.AdjustStock(context.Background(), uuid.New(), dto.AdjustStockRequest{
		Delta:  1,
		Reason: "anything",
	})

	var notFound *service.VariantNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateVariant_Deactivate(t *testing.T) {
	f := newProductFixture()
	v := seedVariantIn(f.variantRepo, "Old flavor", "120.00", 4)

	inactive := false
	resp, err := f.svc.UpdateVariant(context.Background(), v.ID, dto.UpdateVariantRequest{
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, resp.Active)
	// Deactivation keeps the row (and its sale history) around.
	assert.Equal(t, 4, resp.Stock)
}
