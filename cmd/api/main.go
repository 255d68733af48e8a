package main

import (
	"context"
	"log"
	"math/rand"
	"sort"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/core/clock"
	"freight-engine/internal/core/config"
	"freight-engine/internal/core/logger"
	"freight-engine/internal/core/refdata"
	"freight-engine/internal/core/server"
	alertadapters "freight-engine/internal/features/alerts/adapters"
	alerthandler "freight-engine/internal/features/alerts/handler"
	alertservice "freight-engine/internal/features/alerts/service"
	billingadapters "freight-engine/internal/features/billing/adapters"
	billingdomain "freight-engine/internal/features/billing/domain"
	billinghandler "freight-engine/internal/features/billing/handler"
	billingports "freight-engine/internal/features/billing/ports"
	billingservice "freight-engine/internal/features/billing/service"
	complianceadapters "freight-engine/internal/features/compliance/adapters"
	compliancehandler "freight-engine/internal/features/compliance/handler"
	complianceservice "freight-engine/internal/features/compliance/service"
	etaadapters "freight-engine/internal/features/eta/adapters"
	etahandler "freight-engine/internal/features/eta/handler"
	etaservice "freight-engine/internal/features/eta/service"
	factsadapters "freight-engine/internal/features/facts/adapters"
	rateshandler "freight-engine/internal/features/rates/handler"
	ratesservice "freight-engine/internal/features/rates/service"
	routingadapters "freight-engine/internal/features/routing/adapters"
	routinghandler "freight-engine/internal/features/routing/handler"
	routingservice "freight-engine/internal/features/routing/service"
	telemetryadapters "freight-engine/internal/features/telemetry/adapters"
	telemetryhandler "freight-engine/internal/features/telemetry/handler"
	telemetryservice "freight-engine/internal/features/telemetry/service"

	"go.uber.org/zap"
)

// @title Freight Engine API
// @version 1.0
// @description Logistics decision and settlement engine: rate comparison, trade compliance, route optimization, predictive ETA, telemetry monitoring and billing.
// @contact.name API Support
// @contact.email support@freight-engine.io
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	ctx := context.Background()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	clk := clock.Real{}
	factStore := factsadapters.NewRedisFactStore(redisCache)

	// Alerts first: every other component raises exceptions through it.
	alertRepo := alertadapters.NewRedisAlertRepository(redisCache)
	alertSvc := alertservice.NewAlertService(alertRepo, clk)
	alertHdl := alerthandler.NewAlertHandler(alertSvc)

	rateSvc := ratesservice.NewRateService(clk, cfg.Engine.DefaultDistanceKm)
	rateHdl := rateshandler.NewRateHandler(rateSvc)

	complianceSvc := complianceservice.NewComplianceService(
		complianceadapters.NewRedisCheckRepository(redisCache), factStore, alertSvc, clk)
	complianceHdl := compliancehandler.NewComplianceHandler(complianceSvc)

	routingSvc := routingservice.NewRoutingService(
		routingadapters.NewRedisPlanRepository(redisCache), rateSvc, factStore, clk)
	routingHdl := routinghandler.NewRoutingHandler(routingSvc)

	etaSvc := etaservice.NewEtaService(
		etaadapters.NewRedisEtaRepository(redisCache), factStore, clk)
	etaHdl := etahandler.NewEtaHandler(etaSvc)

	telemetrySvc := telemetryservice.NewTelemetryService(
		telemetryadapters.NewRedisReadingRepository(redisCache),
		telemetryadapters.NewRedisGeofenceAlertRepository(redisCache),
		alertSvc, refdata.GeofenceZones, clk)
	telemetryHdl := telemetryhandler.NewTelemetryHandler(telemetrySvc)

	fxRepo := billingadapters.NewRedisFxRepository(redisCache)
	if err := seedFxRates(ctx, fxRepo, clk); err != nil {
		l.Fatal("Failed to seed FX rates", zap.Error(err))
	}

	billingSvc := billingservice.NewBillingService(
		billingadapters.NewRedisInvoiceRepository(redisCache),
		billingadapters.NewRedisPaymentRepository(redisCache),
		fxRepo, rateSvc, factStore, alertSvc, clk,
		func() float64 { return rand.Float64()*2 - 1 },
		cfg.Engine.FxJitterPercent)
	billingHdl := billinghandler.NewBillingHandler(billingSvc)

	srv := server.New(cfg)

	srv.App.Post("/rates/quote", rateHdl.QuoteRates)

	srv.App.Post("/compliance/checks", complianceHdl.RunCheck)
	srv.App.Get("/compliance/checks", complianceHdl.ListChecks)

	srv.App.Post("/routes/optimize", routingHdl.Optimize)
	srv.App.Get("/routes/:tracking", routingHdl.LatestPlan)

	srv.App.Post("/eta/:tracking/predict", etaHdl.Predict)
	srv.App.Get("/eta/:tracking", etaHdl.Current)

	srv.App.Post("/telemetry/readings", telemetryHdl.RecordReading)
	srv.App.Get("/telemetry/:tracking/readings", telemetryHdl.Readings)
	srv.App.Get("/telemetry/:tracking/geofence-alerts", telemetryHdl.GeofenceAlerts)

	srv.App.Post("/billing/invoices", billingHdl.CreateInvoice)
	srv.App.Get("/billing/invoices", billingHdl.ListInvoices)
	srv.App.Get("/billing/invoices/:id", billingHdl.GetInvoice)
	srv.App.Post("/billing/invoices/:id/payments", billingHdl.RecordPayment)
	srv.App.Get("/billing/invoices/:id/payments", billingHdl.ListPayments)
	srv.App.Get("/billing/fx", billingHdl.FxRates)
	srv.App.Post("/billing/fx/refresh", billingHdl.RefreshFxRates)

	srv.App.Get("/alerts", alertHdl.ListAlerts)
	srv.App.Post("/alerts/:id/resolve", alertHdl.ResolveAlert)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// seedFxRates writes the initial FX table on first boot. An already-populated
// table is left alone so refresh drift survives restarts.
func seedFxRates(ctx context.Context, fxRepo billingports.FxRepository, clk clock.Clock) error {
	existing, err := fxRepo.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	currencies := make([]string, 0, len(refdata.FxSeedRates))
	for currency := range refdata.FxSeedRates {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	now := clk.Now()
	rates := make([]billingdomain.FxRate, 0, len(currencies))
	for _, currency := range currencies {
		rates = append(rates, billingdomain.FxRate{
			Currency:  currency,
			RateToUsd: refdata.FxSeedRates[currency],
			UpdatedAt: now,
		})
	}

	return fxRepo.ReplaceAll(ctx, rates)
}
