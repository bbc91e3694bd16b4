package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	appavailability "stieregg/internal/app/availability"
	"stieregg/internal/domain/catalog"
	"stieregg/internal/ical"
	"stieregg/internal/infra/config"
	ginserver "stieregg/internal/infra/http/gin"
	"stieregg/internal/infra/obs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	cat, err := catalog.Load(cfg.SiteConfigPath)
	if err != nil {
		logger.Error("site config load failed", "error", err, "path", cfg.SiteConfigPath)
		os.Exit(1)
	}
	classifier := cat.Classifier()

	engine := ical.NewEngine(logger, ical.WithClient(&http.Client{Timeout: cfg.FetchTimeout}))
	cache := appavailability.NewCache(cfg.CacheTTL, nil)
	service := appavailability.NewService(cat, engine, cache, logger)

	scheduler := cron.New()
	if cfg.RefreshCron != "" {
		if _, err := scheduler.AddFunc(cfg.RefreshCron, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			service.Prewarm(refreshCtx)
		}); err != nil {
			logger.Error("invalid refresh schedule", "error", err, "cron", cfg.RefreshCron)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Service: service},
		Catalog:      ginserver.ApartmentHandler{Catalog: cat},
		Inquiry:      ginserver.InquiryHandler{Service: service, Catalog: cat, Classifier: classifier},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "apartments", len(cat.Apartments()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}
