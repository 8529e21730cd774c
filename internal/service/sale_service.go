package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/infra"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"
	"github.com/LisandroRios/GestionDeVentas/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// pgLockNotAvailable is the SQLSTATE Postgres raises when lock_timeout expires.
const pgLockNotAvailable = "55P03"

// lockWaitTimeout bounds how long a sale blocks on a conflicting sale's
// variant locks before failing with ErrLockTimeout.
const lockWaitTimeout = "3s"

type SaleService interface {
	RecordSale(ctx context.Context, actor *string, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error)
	Receipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	saleRepo     repository.SaleRepository
	variantRepo  repository.VariantRepository
	movementRepo repository.StockMovementRepository
	cashRepo     repository.CashRepository
	settingsRepo repository.SettingsRepository
	dispatcher   *worker.Dispatcher
	pdfPath      string
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	variantRepo repository.VariantRepository,
	movementRepo repository.StockMovementRepository,
	cashRepo repository.CashRepository,
	settingsRepo repository.SettingsRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
		cashRepo:     cashRepo,
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
		pdfPath:      pdfPath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RecordSale ────────────────────────────────────────────────────────────────
// The register's single write path, all-or-nothing:
//   1. Gate on an open cash session
//   2. Validate the cart, consolidate duplicate lines
//   3. BEGIN TX: lock the variant set FOR UPDATE, check stock against the
//      locked rows, freeze prices, create sale+items, decrement stock with a
//      non-negative guard, append one stock movement per variant
//   4. COMMIT
//   5. (async) enqueue a low-stock check for the sold variants

func (s *saleService) RecordSale(ctx context.Context, actor *string, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	// 1. A sale can only be recorded while a register shift is active.
	if _, err := s.cashRepo.FindOpen(ctx); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenCashSession
		}
		return nil, fmt.Errorf("cash session lookup: %w", err)
	}

	// 2. Cart validation and consolidation. Duplicate lines referencing the
	// same variant merge by summing quantities, keeping first-seen order:
	// [A×2, A×3] must behave exactly like [A×5].
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := make([]uuid.UUID, 0, len(req.Items))
	quantities := make(map[uuid.UUID]int, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		id, err := uuid.Parse(item.VariantID)
		if err != nil {
			return nil, fmt.Errorf("invalid variant_id %q: %w", item.VariantID, err)
		}
		if _, seen := quantities[id]; !seen {
			order = append(order, id)
		}
		quantities[id] += item.Quantity
	}

	// 3. Discount configuration, read before the lock phase.
	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings lookup: %w", err)
	}

	// 4. Lock, validate, price and commit as one unit of work.
	var sale model.Sale
	variantNames := make(map[uuid.UUID]string, len(order))

	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		if tx != nil {
			// Bounded wait on the variant lock set; surfaces as 55P03.
			if err := tx.Exec("SET LOCAL lock_timeout = '" + lockWaitTimeout + "'").Error; err != nil {
				return err
			}
		}

		locked, err := s.variantRepo.LockForUpdate(tx, order)
		if err != nil {
			return err
		}

		var missing []uuid.UUID
		for _, id := range order {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &VariantNotFoundError{IDs: missing}
		}

		for _, id := range order {
			v := locked[id]
			if v.Stock < quantities[id] {
				return &InsufficientStockError{
					VariantID: id,
					Available: v.Stock,
					Requested: quantities[id],
				}
			}
			variantNames[id] = v.VariantName
		}

		// Pricing: unit price frozen from the locked row, exact decimal
		// arithmetic, totals rounded half-up to 2 decimals.
		subtotal := decimal.Zero
		items := make([]model.SaleItem, 0, len(order))
		for _, id := range order {
			v := locked[id]
			qty := quantities[id]
			lineTotal := v.Price.Mul(decimal.NewFromInt(int64(qty)))
			subtotal = subtotal.Add(lineTotal)
			items = append(items, model.SaleItem{
				VariantID:       id,
				Quantity:        qty,
				UnitPriceAtSale: v.Price,
				LineTotal:       lineTotal,
			})
		}

		var discountPercent *decimal.Decimal
		total := subtotal
		if req.PaymentMethod == model.PaymentCash && settings.CashDiscountEnabled {
			dp := settings.CashDiscountPercent
			discountPercent = &dp
			total = subtotal.Mul(decimal.NewFromInt(1).Sub(dp.Div(decimal.NewFromInt(100))))
		}

		sale = model.Sale{
			PaymentMethod:   req.PaymentMethod,
			DiscountPercent: discountPercent,
			Subtotal:        subtotal.Round(2),
			Total:           total.Round(2),
			Items:           items,
		}
		if err := s.saleRepo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Decrement stock and append the audit trail. The guarded UPDATE
		// re-verifies non-negativity at write time; a miss here means the
		// lock did not serialize as expected and the whole sale aborts.
		for _, id := range order {
			qty := quantities[id]
			before := locked[id].Stock

			ok, err := s.variantRepo.DecrementStockTx(tx, id, qty)
			if err != nil {
				return err
			}
			if !ok {
				return &StockWouldGoNegativeError{VariantID: id}
			}

			mov := &model.StockMovement{
				VariantID:   id,
				Delta:       -qty,
				BeforeStock: before,
				AfterStock:  before - qty,
				Reason:      "sale:" + sale.ID.String(),
				Actor:       actor,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, classifySaleErr(txErr)
	}

	// 5. Low-stock check for the sold variants — best effort, fire & forget.
	if s.dispatcher != nil {
		ids := make([]string, 0, len(order))
		for _, id := range order {
			ids = append(ids, id.String())
		}
		_ = s.dispatcher.EnqueueLowStockCheck(ctx, worker.LowStockJobPayload{
			SaleID:     sale.ID.String(),
			VariantIDs: ids,
		})
	}

	resp := saleToResponse(&sale)
	for i := range resp.Items {
		if id, err := uuid.Parse(resp.Items[i].VariantID); err == nil {
			resp.Items[i].VariantName = variantNames[id]
		}
	}
	return resp, nil
}

// classifySaleErr separates domain failures (returned as-is) from lock
// timeouts and opaque storage errors.
func classifySaleErr(err error) error {
	var (
		notFound     *VariantNotFoundError
		insufficient *InsufficientStockError
		negative     *StockWouldGoNegativeError
		pgErr        *pgconn.PgError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &insufficient), errors.As(err, &negative):
		return err
	case errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable:
		return ErrLockTimeout
	default:
		return &TransactionError{Err: err}
	}
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, error) {
	sales, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

// Receipt renders (or re-renders) a thermal-format PDF receipt for a
// recorded sale and returns the path of the generated file.
func (s *saleService) Receipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("sale not found")
	}
	storeName := "Store"
	if settings, err := s.settingsRepo.GetOrCreate(ctx); err == nil && settings.StoreName != nil {
		storeName = *settings.StoreName
	}
	return infra.GenerateReceiptPDF(sale, storeName, s.pdfPath)
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		resp := dto.SaleItemResponse{
			VariantID:       item.VariantID.String(),
			Quantity:        item.Quantity,
			UnitPriceAtSale: item.UnitPriceAtSale,
			LineTotal:       item.LineTotal,
		}
		if item.Variant != nil {
			resp.VariantName = item.Variant.VariantName
			if item.Variant.Product != nil {
				resp.ProductName = item.Variant.Product.Name
			}
		}
		items = append(items, resp)
	}
	return &dto.SaleResponse{
		ID:              s.ID.String(),
		PaymentMethod:   s.PaymentMethod,
		DiscountPercent: s.DiscountPercent,
		Subtotal:        s.Subtotal,
		Total:           s.Total,
		Items:           items,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
