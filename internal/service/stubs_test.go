package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/dto"
	"github.com/LisandroRios/GestionDeVentas/internal/model"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"
	"github.com/LisandroRios/GestionDeVentas/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVariantRepo is an in-memory VariantRepository for testing.
type stubVariantRepo struct {
	variants map[uuid.UUID]*model.ProductVariant
}

func newStubVariantRepo() *stubVariantRepo {
	return &stubVariantRepo{variants: make(map[uuid.UUID]*model.ProductVariant)}
}

func (r *stubVariantRepo) Create(_ context.Context, v *model.ProductVariant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variants[v.ID] = v
	return nil
}

func (r *stubVariantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVariantRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.ProductVariant, error) {
	var out []model.ProductVariant
	for _, v := range r.variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVariantRepo) Update(_ context.Context, v *model.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *stubVariantRepo) LockForUpdate(_ *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*model.ProductVariant, error) {
	// Detached copies, like rows scanned out of a SELECT ... FOR UPDATE.
	out := make(map[uuid.UUID]*model.ProductVariant, len(ids))
	for _, id := range ids {
		if v, ok := r.variants[id]; ok {
			row := *v
			out[id] = &row
		}
	}
	return out, nil
}

func (r *stubVariantRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	v, ok := r.variants[id]
	if !ok || v.Stock < qty {
		return false, nil
	}
	v.Stock -= qty
	return true, nil
}

func (r *stubVariantRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	v, ok := r.variants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Stock += delta
	return nil
}

func (r *stubVariantRepo) FindLowStock(_ context.Context) ([]model.ProductVariant, error) {
	var out []model.ProductVariant
	for _, v := range r.variants {
		if v.Active && v.StockMin != nil && v.Stock <= *v.StockMin {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVariantRepo) DB() *gorm.DB { return nil }

var _ repository.VariantRepository = (*stubVariantRepo)(nil)

// stubProductRepo keeps products in memory. FindByID hydrates Variants
// from the linked variant repo, like the GORM Preload does.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	variants *stubVariantRepo
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	if r.variants != nil {
		out.Variants, _ = r.variants.ListByProduct(context.Background(), id)
	}
	return &out, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSaleRepo stores sales in memory and sums totals like the SQL impl.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) SumTotalsSince(_ context.Context, t time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range r.sales {
		if !s.CreatedAt.Before(t) {
			sum = sum.Add(s.Total)
		}
	}
	return sum, nil
}

func (r *stubSaleRepo) CountAndGross(_ context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	count := 0
	gross := decimal.Zero
	for _, s := range r.sales {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			count++
			gross = gross.Add(s.Total)
		}
	}
	return count, gross, nil
}

func (r *stubSaleRepo) TotalsByPayment(_ context.Context, _, _ time.Time) ([]repository.PaymentTotalRow, error) {
	return nil, nil
}

func (r *stubSaleRepo) TopVariants(_ context.Context, _, _ time.Time, _ int) ([]repository.TopVariantRow, error) {
	return nil, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubMovementRepo captures the audit trail; failCreate forces a mid-TX
// error to exercise atomicity.
type stubMovementRepo struct {
	movements  []model.StockMovement
	failCreate bool
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if r.failCreate {
		return errors.New("movement insert failed")
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) ListByVariant(_ context.Context, variantID uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.VariantID == variantID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubCashRepo holds at most one session, mirroring the open-shift invariant.
type stubCashRepo struct {
	sessions []*model.CashSession
}

func (r *stubCashRepo) CreateSession(_ context.Context, s *model.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *stubCashRepo) FindOpen(_ context.Context) (*model.CashSession, error) {
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].IsOpen() {
			return r.sessions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCashRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCashRepo) UpdateSession(_ context.Context, s *model.CashSession) error {
	for i := range r.sessions {
		if r.sessions[i].ID == s.ID {
			r.sessions[i] = s
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCashRepo) History(_ context.Context, _ dto.CashHistoryFilter) ([]model.CashSession, error) {
	var out []model.CashSession
	for _, s := range r.sessions {
		if !s.IsOpen() {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.CashRepository = (*stubCashRepo)(nil)

// stubSettingsRepo returns a fixed settings row.
type stubSettingsRepo struct {
	settings model.Settings
}

func (r *stubSettingsRepo) GetOrCreate(_ context.Context) (*model.Settings, error) {
	s := r.settings
	s.ID = model.SettingsID
	return &s, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *model.Settings) error {
	r.settings = *s
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

// ── Fixture helpers ───────────────────────────────────────────────────────────

type saleFixture struct {
	svc          service.SaleService
	saleRepo     *stubSaleRepo
	variantRepo  *stubVariantRepo
	movementRepo *stubMovementRepo
	cashRepo     *stubCashRepo
	settingsRepo *stubSettingsRepo
}

func newSaleFixture(openSession bool, settings model.Settings) *saleFixture {
	f := &saleFixture{
		saleRepo:     newStubSaleRepo(),
		variantRepo:  newStubVariantRepo(),
		movementRepo: &stubMovementRepo{},
		cashRepo:     &stubCashRepo{},
		settingsRepo: &stubSettingsRepo{settings: settings},
	}
	if openSession {
		f.cashRepo.CreateSession(context.Background(), &model.CashSession{
			OpenedAt:      time.Now().UTC().Add(-time.Hour),
			OpeningAmount: decimal.NewFromInt(500),
		})
	}
	f.svc = service.NewSaleService(f.saleRepo, f.variantRepo, f.movementRepo, f.cashRepo, f.settingsRepo, nil, "")
	return f
}

func (f *saleFixture) seedVariant(name string, price string, stock int) *model.ProductVariant {
	return seedVariantIn(f.variantRepo, name, price, stock)
}

func seedVariantIn(repo *stubVariantRepo, name string, price string, stock int) *model.ProductVariant {
	v := &model.ProductVariant{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		VariantName: name,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Active:      true,
	}
	repo.variants[v.ID] = v
	return v
}
