package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentdesk/internal/cache"
	"rentdesk/internal/config"
	"rentdesk/internal/handler"
	"rentdesk/internal/logger"
	"rentdesk/internal/port"
	"rentdesk/internal/remote"
	"rentdesk/internal/repository/postgres"
	"rentdesk/internal/router"
	"rentdesk/internal/service"
	"rentdesk/internal/storage"
	s3storage "rentdesk/internal/storage/s3"
	"rentdesk/internal/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.SetupBinding(); err != nil {
		return fmt.Errorf("failed to register binding rules: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	checks := map[string]handler.Pinger{"database": db}

	// Remote gateways
	contracts := remote.NewContractClient(cfg.Remote.ContractsURL, cfg.Remote.Timeout, log)
	customers := remote.NewCustomerClient(cfg.Remote.CustomersURL, cfg.Remote.Timeout, log)
	var (
		vehicles     port.VehicleSource = remote.NewVehicleClient(cfg.Remote.VehiclesURL, cfg.Remote.Timeout, log)
		vehicleCache port.CatalogInvalidator
	)

	if cfg.Cache.RedisAddr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		catalog := cache.NewVehicleCatalog(vehicles, rdb, cfg.Cache.VehicleTTL, log)
		vehicles, vehicleCache = catalog, catalog
		checks["redis"] = cache.Pinger{Client: rdb}
		log.Info("vehicle catalog cache enabled", zap.Duration("ttl", cfg.Cache.VehicleTTL))
	}

	var invoiceSource port.InvoiceSource = contracts
	if cfg.Remote.InvoiceSource == config.InvoiceSourceLocal {
		invoiceSource = postgres.NewInvoiceSource(db)
	}

	archive, err := newArchive(ctx, cfg)
	if err != nil {
		return err
	}

	// Repositories
	reportRepo := postgres.NewGeneratedReportRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)

	audit := service.NewAsyncAuditSink(reportRepo, service.AuditSinkConfig{
		BufferSize: cfg.Audit.BufferSize,
		Workers:    cfg.Audit.Workers,
	}, log)
	audit.Start()

	// Services
	reportSvc := service.NewReportService(service.ReportDeps{
		Contracts: contracts,
		Invoices:  invoiceSource,
		Customers: customers,
		Vehicles:     vehicles,
		VehicleCache: vehicleCache,
		Audit:        audit,
		Archive:      archive,
		Actor:        cfg.Audit.Actor,
		KeyPrefix:    cfg.Archive.KeyPrefix,
		Logger:       log,
	})
	querySvc := service.NewReportQueryService(reportRepo, archive, cfg.Archive.KeyPrefix)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, contracts, log)

	r := router.Setup(router.Handlers{
		Report:    handler.NewReportHandler(reportSvc),
		Generated: handler.NewGeneratedReportHandler(querySvc),
		Invoice:   handler.NewInvoiceHandler(invoiceSvc),
		Health:    handler.NewHealthHandler(checks),
	}, cfg.CORS.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		_ = audit.Close(ctx)
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := audit.Close(shutdownCtx); err != nil {
		log.Warn("audit sink did not drain before shutdown", zap.Error(err))
	}

	log.Info("server exited")
	return nil
}

func newArchive(ctx context.Context, cfg *config.Config) (port.ReportArchive, error) {
	if cfg.Archive.Provider != config.ArchiveS3 {
		return storage.NewNoopArchive(), nil
	}
	client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	return storage.NewObjectArchive(client, cfg.S3.Bucket, cfg.Archive.PresignExpiry), nil
}
