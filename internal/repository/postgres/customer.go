package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/jmoiron/sqlx"
)

type customerRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCustomerRepository(client postgres.IClient, log *logger.Logger) customer.Repository {
	return &customerRepository{client: client, log: log}
}

const customerColumns = `id, name, tax_number, tax_office, email, phone,
	address_line, district, city, country, postal_code,
	is_einvoice_mukellef, einvoice_alias_name, alias_checked_at,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES (:id, :name, :tax_number, :tax_office, :email, :phone,
			:address_line, :district, :city, :country, :postal_code,
			:is_einvoice_mukellef, :einvoice_alias_name, :alias_checked_at,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("Bu vergi numarası ile kayıtlı bir müşteri zaten var").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE id = $1 AND tenant_id = $2 AND status != $3`

	var c customer.Customer
	err := r.client.Querier(ctx).GetContext(ctx, &c, query,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Customer with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) GetByTaxNumber(ctx context.Context, taxNumber string) (*customer.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE tax_number = $1 AND tenant_id = $2 AND status != $3`

	var c customer.Customer
	err := r.client.Querier(ctx).GetContext(ctx, &c, query,
		taxNumber, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Customer with tax number %s was not found", taxNumber).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = ? AND status != ?`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}
	query, args = applyCustomerFilter(query, args, filter)

	query += ` ORDER BY ` + sanitizeSortColumn(filter.GetSort()) + ` ` + sanitizeSortOrder(filter.GetOrder())
	if !filter.IsUnlimited() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	var customers []*customer.Customer
	err := r.client.Querier(ctx).SelectContext(ctx, &customers, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM customers WHERE tenant_id = ? AND status != ?`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}
	query, args = applyCustomerFilter(query, args, filter)

	var count int
	err := r.client.Querier(ctx).GetContext(ctx, &count, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func applyCustomerFilter(query string, args []interface{}, filter *types.CustomerFilter) (string, []interface{}) {
	if filter == nil {
		return query, args
	}
	if filter.TaxNumber != "" {
		query += ` AND tax_number = ?`
		args = append(args, filter.TaxNumber)
	}
	if len(filter.CustomerIDs) > 0 {
		q, a, _ := sqlx.In(` AND id IN (?)`, filter.CustomerIDs)
		query += q
		args = append(args, a...)
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			query += ` AND created_at >= ?`
			args = append(args, *filter.StartTime)
		}
		if filter.EndTime != nil {
			query += ` AND created_at <= ?`
			args = append(args, *filter.EndTime)
		}
	}
	return query, args
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE customers SET
			name = :name, tax_office = :tax_office, email = :email,
			phone = :phone, address_line = :address_line, district = :district,
			city = :city, country = :country, postal_code = :postal_code,
			is_einvoice_mukellef = :is_einvoice_mukellef,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, c.ID)
}

func (r *customerRepository) UpdateEInvoiceAlias(ctx context.Context, id string, alias *string) error {
	query := `
		UPDATE customers SET
			einvoice_alias_name = $1, alias_checked_at = $2,
			updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	now := time.Now().UTC()
	result, err := r.client.Querier(ctx).ExecContext(ctx, query,
		alias, now, types.GetUserID(ctx), id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer alias").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, id)
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	result, err := r.client.Querier(ctx).ExecContext(ctx, query,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, id)
}
