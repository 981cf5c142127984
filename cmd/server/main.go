package main

import (
	"context"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/api"
	v1 "github.com/emretit/paftamobile-sub005/internal/api/v1"
	"github.com/emretit/paftamobile-sub005/internal/cache"
	"github.com/emretit/paftamobile-sub005/internal/config"
	"github.com/emretit/paftamobile-sub005/internal/httpclient"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	"github.com/emretit/paftamobile-sub005/internal/repository"
	"github.com/emretit/paftamobile-sub005/internal/service"
	"github.com/emretit/paftamobile-sub005/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title Pafta API
// @version 1.0
// @description Pafta e-invoice API service
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func init() {
	// All persisted timestamps are UTC
	time.Local = time.UTC
}

func main() {
	// .env is optional, used for local development only
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			postgres.NewDB,
			postgres.NewClient,

			provideNilveraClient,

			repository.NewInvoiceRepository,
			repository.NewCustomerRepository,
			repository.NewCompanyRepository,
			repository.NewEInvoiceRepository,

			service.NewOperationRecorder,
			service.NewServiceParams,
			service.NewAuthService,
			service.NewInvoiceService,
			service.NewCustomerService,
			service.NewCompanyService,
			service.NewEInvoiceService,

			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideNilveraClient(
	cfg *config.Configuration,
	c cache.Cache,
	recorder nilvera.OperationRecorder,
	log *logger.Logger,
) nilvera.Client {
	httpClient := httpclient.NewClientWithTimeout(cfg.Nilvera.GetTimeout())
	return nilvera.NewClient(cfg.Nilvera, httpClient, c, recorder, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	authService service.AuthService,
	einvoiceService service.EInvoiceService,
	invoiceService service.InvoiceService,
	customerService service.CustomerService,
	companyService service.CompanyService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Auth:     v1.NewAuthHandler(authService, log),
		EInvoice: v1.NewEInvoiceHandler(einvoiceService, log),
		Invoice:  v1.NewInvoiceHandler(invoiceService, log),
		Customer: v1.NewCustomerHandler(customerService, log),
		Company:  v1.NewCompanyHandler(companyService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server...")
			return nil
		},
	})
}
