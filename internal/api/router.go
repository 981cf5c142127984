package api

import (
	v1 "github.com/emretit/paftamobile-sub005/internal/api/v1"
	"github.com/emretit/paftamobile-sub005/internal/config"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/rest/middleware"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	EInvoice *v1.EInvoiceHandler
	Invoice  *v1.InvoiceHandler
	Customer *v1.CustomerHandler
	Company  *v1.CompanyHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// Credential endpoints stay outside the token middleware
	authGroup := router.Group("/v1/auth")
	{
		authGroup.POST("/signup", handlers.Auth.SignUp)
		authGroup.POST("/login", handlers.Auth.Login)
	}

	v1Group := router.Group("/v1")
	if cfg.Deployment.Mode == types.ModeLocal {
		v1Group.Use(middleware.GuestAuthenticateMiddleware)
	} else {
		v1Group.Use(middleware.AuthenticateMiddleware(cfg, log))
	}
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	einvoices := router.Group("/einvoices")
	{
		einvoices.GET("", handlers.EInvoice.ListProviderInvoices)
		einvoices.POST("/refresh", handlers.EInvoice.RefreshPendingStatuses)
		einvoices.GET("/:id", handlers.EInvoice.GetTracking)
		einvoices.GET("/:id/logs", handlers.EInvoice.GetLogs)
		einvoices.GET("/:id/pdf", handlers.EInvoice.DownloadPDF)
		einvoices.POST("/:id/send", handlers.EInvoice.SendInvoice)
		einvoices.POST("/:id/resend", handlers.EInvoice.ResendInvoice)
		einvoices.POST("/:id/status", handlers.EInvoice.CheckInvoiceStatus)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.GetInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	companies := router.Group("/companies")
	{
		companies.POST("", handlers.Company.CreateCompany)
		companies.GET("/me", handlers.Company.GetTenantCompany)
		companies.PUT("/:id", handlers.Company.UpdateCompany)
	}
}
