package repository

import (
	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	postgresRepo "github.com/emretit/paftamobile-sub005/internal/repository/postgres"
)

func NewInvoiceRepository(client postgres.IClient, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(client, logger)
}

func NewCustomerRepository(client postgres.IClient, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(client, logger)
}

func NewCompanyRepository(client postgres.IClient, logger *logger.Logger) company.Repository {
	return postgresRepo.NewCompanyRepository(client, logger)
}

func NewEInvoiceRepository(client postgres.IClient, logger *logger.Logger) einvoice.Repository {
	return postgresRepo.NewEInvoiceRepository(client, logger)
}
