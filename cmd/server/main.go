package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LisandroRios/GestionDeVentas/internal/config"
	"github.com/LisandroRios/GestionDeVentas/internal/handler"
	"github.com/LisandroRios/GestionDeVentas/internal/infra"
	"github.com/LisandroRios/GestionDeVentas/internal/repository"
	"github.com/LisandroRios/GestionDeVentas/internal/router"
	"github.com/LisandroRios/GestionDeVentas/internal/service"
	"github.com/LisandroRios/GestionDeVentas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashRepo := repository.NewCashRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Worker pool for async low-stock alerts. Handlers are wired here
	// (composition root) so the pool has access to the full infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	workerHandlers := &worker.Handlers{
		LowStock: worker.NewLowStockWorker(variantRepo, mailer, cfg.AlertEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Services
	saleSvc := service.NewSaleService(saleRepo, variantRepo, movementRepo, cashRepo, settingsRepo, dispatcher, cfg.PDFStoragePath)
	cashSvc := service.NewCashService(cashRepo, saleRepo)
	productSvc := service.NewProductService(productRepo, variantRepo, movementRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	reportSvc := service.NewReportService(saleRepo, variantRepo, rdb)
	authSvc := service.NewAuthService(userRepo, cfg)

	r := router.New(cfg, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Products: handler.NewProductsHandler(productSvc),
		Sales:    handler.NewSalesHandler(saleSvc),
		Cash:     handler.NewCashHandler(cashSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
		Reports:  handler.NewReportsHandler(reportSvc),
		Health:   handler.NewHealthHandler(db, rdb),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("GestionDeVentas backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
