package service

import (
	"github.com/emretit/paftamobile-sub005/internal/config"
	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	InvoiceRepo  invoice.Repository
	CustomerRepo customer.Repository
	CompanyRepo  company.Repository
	EInvoiceRepo einvoice.Repository

	// Provider client
	NilveraClient nilvera.Client
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	invoiceRepo invoice.Repository,
	customerRepo customer.Repository,
	companyRepo company.Repository,
	einvoiceRepo einvoice.Repository,
	nilveraClient nilvera.Client,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		DB:            db,
		InvoiceRepo:   invoiceRepo,
		CustomerRepo:  customerRepo,
		CompanyRepo:   companyRepo,
		EInvoiceRepo:  einvoiceRepo,
		NilveraClient: nilveraClient,
	}
}
