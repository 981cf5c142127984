package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/jmoiron/sqlx"
)

type invoiceRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewInvoiceRepository(client postgres.IClient, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, log: log}
}

const invoiceColumns = `id, invoice_number, customer_id, issue_date, currency,
	subtotal_amount, tax_amount, total_amount, invoice_status, notes,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

const lineItemColumns = `id, invoice_id, name, quantity, unit_price, tax_rate,
	discount_rate, total_amount,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (` + invoiceColumns + `)
		VALUES (:id, :invoice_number, :customer_id, :issue_date, :currency,
			:subtotal_amount, :tax_amount, :total_amount, :invoice_status, :notes,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, inv); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("Bu fatura numarası zaten kullanılmış").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.SalesInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM sales_invoices
		WHERE id = $1 AND tenant_id = $2 AND status != $3`

	var inv invoice.SalesInvoice
	err := r.client.Querier(ctx).GetContext(ctx, &inv, query,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("Invoice with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) GetWithLines(ctx context.Context, id string) (*invoice.SalesInvoice, error) {
	inv, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + lineItemColumns + ` FROM sales_invoice_line_items
		WHERE invoice_id = $1 AND tenant_id = $2 AND status != $3
		ORDER BY created_at ASC`

	var items []*invoice.LineItem
	err = r.client.Querier(ctx).SelectContext(ctx, &items, query,
		id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load invoice line items").
			Mark(ierr.ErrDatabase)
	}

	inv.LineItems = items
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.SalesInvoiceFilter) ([]*invoice.SalesInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE tenant_id = ? AND status != ?`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}
	query, args = applyInvoiceFilter(query, args, filter)

	query += ` ORDER BY ` + sanitizeSortColumn(filter.GetSort()) + ` ` + sanitizeSortOrder(filter.GetOrder())
	if !filter.IsUnlimited() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	var invoices []*invoice.SalesInvoice
	err := r.client.Querier(ctx).SelectContext(ctx, &invoices, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.SalesInvoiceFilter) (int, error) {
	query := `SELECT COUNT(*) FROM sales_invoices WHERE tenant_id = ? AND status != ?`
	args := []interface{}{types.GetTenantID(ctx), types.StatusDeleted}
	query, args = applyInvoiceFilter(query, args, filter)

	var count int
	err := r.client.Querier(ctx).GetContext(ctx, &count, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func applyInvoiceFilter(query string, args []interface{}, filter *types.SalesInvoiceFilter) (string, []interface{}) {
	if filter == nil {
		return query, args
	}
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if filter.InvoiceStatus != "" {
		query += ` AND invoice_status = ?`
		args = append(args, filter.InvoiceStatus)
	}
	if len(filter.InvoiceIDs) > 0 {
		q, a, _ := sqlx.In(` AND id IN (?)`, filter.InvoiceIDs)
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

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.SalesInvoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE sales_invoices SET
			customer_id = :customer_id, issue_date = :issue_date,
			currency = :currency, subtotal_amount = :subtotal_amount,
			tax_amount = :tax_amount, total_amount = :total_amount,
			invoice_status = :invoice_status, notes = :notes,
			updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, inv.ID)
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status types.SalesInvoiceStatus) error {
	query := `
		UPDATE sales_invoices SET invoice_status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	result, err := r.client.Querier(ctx).ExecContext(ctx, query,
		status, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, id)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE sales_invoices SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	result, err := r.client.Querier(ctx).ExecContext(ctx, query,
		types.StatusDeleted, time.Now().UTC(), types.GetUserID(ctx),
		id, types.GetTenantID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return requireRowAffected(result, id)
}

func (r *invoiceRepository) CreateLineItems(ctx context.Context, invoiceID string, items []*invoice.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO sales_invoice_line_items (` + lineItemColumns + `)
		VALUES (:id, :invoice_id, :name, :quantity, :unit_price, :tax_rate,
			:discount_rate, :total_amount,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, items); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice line items").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
