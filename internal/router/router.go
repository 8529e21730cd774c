package router

import (
	"github.com/LisandroRios/GestionDeVentas/internal/config"
	"github.com/LisandroRios/GestionDeVentas/internal/handler"
	"github.com/LisandroRios/GestionDeVentas/internal/middleware"
	"github.com/LisandroRios/GestionDeVentas/internal/model"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductsHandler
	Sales    *handler.SalesHandler
	Cash     *handler.CashHandler
	Settings *handler.SettingsHandler
	Reports  *handler.ReportsHandler
	Health   *handler.HealthHandler
}

// New builds the Gin engine with the full route table. Cashiers can
// operate the register (sales, cash session, product reads); catalog
// writes, stock corrections, settings and user management are admin-only.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSOrigin),
	)

	r.GET("/health", h.Health.Check)

	v1 := r.Group("/v1")
	v1.POST("/auth/login", middleware.LoginRateLimiter(), h.Auth.Login)

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWTSecret))

	anyRole := middleware.RequireRole(model.RoleCashier, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Catalog
	authed.GET("/products", anyRole, h.Products.ListProducts)
	authed.POST("/products", adminOnly, h.Products.CreateProduct)
	authed.PATCH("/products/:id", adminOnly, h.Products.UpdateProduct)
	authed.GET("/products/:id/variants", anyRole, h.Products.ListVariants)
	authed.POST("/products/:id/variants", adminOnly, h.Products.CreateVariant)
	authed.PATCH("/variants/:id", adminOnly, h.Products.UpdateVariant)
	authed.PATCH("/variants/:id/stock", adminOnly, h.Products.AdjustStock)

	// Sales
	authed.POST("/sales", anyRole, h.Sales.RecordSale)
	authed.GET("/sales", anyRole, h.Sales.ListSales)
	authed.GET("/sales/:id", anyRole, h.Sales.GetSale)
	authed.GET("/sales/:id/receipt", anyRole, h.Sales.Receipt)

	// Cash session
	authed.POST("/cash/open", anyRole, h.Cash.Open)
	authed.POST("/cash/close", anyRole, h.Cash.Close)
	authed.GET("/cash/current", anyRole, h.Cash.Current)
	authed.GET("/cash/history", adminOnly, h.Cash.History)

	// Settings
	authed.GET("/settings", adminOnly, h.Settings.Get)
	authed.PUT("/settings", adminOnly, h.Settings.Update)

	// Reports
	authed.GET("/dashboard/today", anyRole, h.Reports.DashboardToday)
	authed.GET("/reports/low-stock", anyRole, h.Reports.LowStock)

	// User management
	authed.POST("/users", adminOnly, h.Auth.CreateUser)

	return r
}
