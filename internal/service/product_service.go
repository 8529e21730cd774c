package service

import (
	"context"
	"errors"
	"strings"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)

	CreateVariant(ctx context.Context, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]dto.VariantResponse, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error)

	// AdjustStock applies a signed manual correction and appends the audit
	// movement, atomically. Rejected when the result would be negative.
	AdjustStock(ctx context.Context, variantID uuid.UUID, req dto.AdjustStockRequest) (*dto.VariantResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	variantRepo  repository.VariantRepository
	movementRepo repository.StockMovementRepository
}

func NewProductService(
	repo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	movementRepo repository.StockMovementRepository,
) ProductService {
	return &productService{repo: repo, variantRepo: variantRepo, movementRepo: movementRepo}
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, errors.New("product with this name already exists")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product := &model.Product{
		Name:     name,
		Category: trimmedName(req.Category),
		Active:   active,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("invalid name")
		}
		if dup, err := s.repo.FindByName(ctx, name); err == nil && dup.ID != id {
			return nil, errors.New("product with this name already exists")
		}
		product.Name = name
	}
	if req.Category != nil {
		product.Category = trimmedName(req.Category)
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

// ── Variants ──────────────────────────────────────────────────────────────────

func (s *productService) CreateVariant(ctx context.Context, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}

	name := strings.TrimSpace(req.VariantName)
	for _, existing := range product.Variants {
		if existing.VariantName == name {
			return nil, errors.New("variant already exists for this product")
		}
	}

	variant := &model.ProductVariant{
		ProductID:   productID,
		VariantName: name,
		SKU:         trimmedName(req.SKU),
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		StockMin:    req.StockMin,
		Active:      true,
	}
	if err := s.variantRepo.Create(ctx, variant); err != nil {
		return nil, err
	}
	return variantToResponse(variant), nil
}

func (s *productService) ListVariants(ctx context.Context, productID uuid.UUID) ([]dto.VariantResponse, error) {
	variants, err := s.variantRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for i := range variants {
		out = append(out, *variantToResponse(&variants[i]))
	}
	return out, nil
}

func (s *productService) UpdateVariant(ctx context.Context, id uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("variant not found")
	}

	if req.VariantName != nil {
		name := strings.TrimSpace(*req.VariantName)
		if name == "" {
			return nil, errors.New("invalid variant_name")
		}
		siblings, err := s.variantRepo.ListByProduct(ctx, variant.ProductID)
		if err != nil {
			return nil, err
		}
		for _, sib := range siblings {
			if sib.ID != id && sib.VariantName == name {
				return nil, errors.New("variant already exists for this product")
			}
		}
		variant.VariantName = name
	}
	if req.SKU != nil {
		variant.SKU = trimmedName(req.SKU)
	}
	if req.Price != nil {
		variant.Price = req.Price.Round(2)
	}
	if req.StockMin != nil {
		variant.StockMin = req.StockMin
	}
	if req.Active != nil {
		variant.Active = *req.Active
	}

	if err := s.variantRepo.Update(ctx, variant); err != nil {
		return nil, err
	}
	return variantToResponse(variant), nil
}

// ── Manual stock adjustment ───────────────────────────────────────────────────

func (s *productService) AdjustStock(ctx context.Context, variantID uuid.UUID, req dto.AdjustStockRequest) (*dto.VariantResponse, error) {
	var after *model.ProductVariant

	txErr := runTx(ctx, s.variantRepo.DB(), func(tx *gorm.DB) error {
		locked, err := s.variantRepo.LockForUpdate(tx, []uuid.UUID{variantID})
		if err != nil {
			return err
		}
		variant, ok := locked[variantID]
		if !ok {
			return &VariantNotFoundError{IDs: []uuid.UUID{variantID}}
		}

		if variant.Stock+req.Delta < 0 {
			return &StockWouldGoNegativeError{VariantID: variantID}
		}

		if err := s.variantRepo.UpdateStockTx(tx, variantID, req.Delta); err != nil {
			return err
		}

		mov := &model.StockMovement{
			VariantID:   variantID,
			Delta:       req.Delta,
			BeforeStock: variant.Stock,
			AfterStock:  variant.Stock + req.Delta,
			Reason:      "manual-adjust: " + req.Reason,
			Actor:       req.Actor,
		}
		if err := s.movementRepo.CreateTx(tx, mov); err != nil {
			return err
		}

		variant.Stock += req.Delta
		after = variant
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return variantToResponse(after), nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func productToResponse(p *model.Product) *dto.ProductResponse {
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, *variantToResponse(&p.Variants[i]))
	}
	return &dto.ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: p.Category,
		Active:   p.Active,
		Variants: variants,
	}
}

func variantToResponse(v *model.ProductVariant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:          v.ID.String(),
		ProductID:   v.ProductID.String(),
		VariantName: v.VariantName,
		SKU:         v.SKU,
		Price:       v.Price,
		Stock:       v.Stock,
		StockMin:    v.StockMin,
		Active:      v.Active,
	}
}
