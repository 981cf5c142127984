package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/postgres"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/jmoiron/sqlx"
)

type einvoiceRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewEInvoiceRepository(client postgres.IClient, log *logger.Logger) einvoice.Repository {
	return &einvoiceRepository{client: client, log: log}
}

const trackingColumns = `id, sales_invoice_id, provider_invoice_id, transfer_id,
	einvoice_status, invoice_state, answer_type, answer_code,
	sent_at, delivered_at, responded_at,
	error_message, error_code, last_response, version,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

// Upsert writes the tracking row keyed on (sales_invoice_id, tenant_id). The
// update only lands when the stored version is exactly one behind the version
// being written, so two concurrent writers cannot both win.
func (r *einvoiceRepository) Upsert(ctx context.Context, tracking *einvoice.StatusTracking) error {
	tracking.UpdatedAt = time.Now().UTC()
	tracking.UpdatedBy = types.GetUserID(ctx)

	query := `
		INSERT INTO einvoice_status_tracking (` + trackingColumns + `)
		VALUES (:id, :sales_invoice_id, :provider_invoice_id, :transfer_id,
			:einvoice_status, :invoice_state, :answer_type, :answer_code,
			:sent_at, :delivered_at, :responded_at,
			:error_message, :error_code, :last_response, :version,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)
		ON CONFLICT (sales_invoice_id, tenant_id) DO UPDATE SET
			provider_invoice_id = EXCLUDED.provider_invoice_id,
			transfer_id = EXCLUDED.transfer_id,
			einvoice_status = EXCLUDED.einvoice_status,
			invoice_state = EXCLUDED.invoice_state,
			answer_type = EXCLUDED.answer_type,
			answer_code = EXCLUDED.answer_code,
			sent_at = EXCLUDED.sent_at,
			delivered_at = EXCLUDED.delivered_at,
			responded_at = EXCLUDED.responded_at,
			error_message = EXCLUDED.error_message,
			error_code = EXCLUDED.error_code,
			last_response = EXCLUDED.last_response,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		WHERE einvoice_status_tracking.version = EXCLUDED.version - 1`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, tracking)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write e-invoice tracking").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read affected rows").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("stale e-invoice tracking write").
			WithHint("Takip kaydı başka bir işlem tarafından güncellendi, yeniden deneyin").
			WithReportableDetails(map[string]any{
				"sales_invoice_id": tracking.SalesInvoiceID,
				"version":          tracking.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}
	return nil
}

func (r *einvoiceRepository) GetByInvoiceID(ctx context.Context, salesInvoiceID string) (*einvoice.StatusTracking, error) {
	query := `
		SELECT ` + trackingColumns + ` FROM einvoice_status_tracking
		WHERE sales_invoice_id = $1 AND tenant_id = $2`

	var tracking einvoice.StatusTracking
	err := r.client.Querier(ctx).GetContext(ctx, &tracking, query,
		salesInvoiceID, types.GetTenantID(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("No e-invoice tracking for invoice %s", salesInvoiceID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get e-invoice tracking").
			Mark(ierr.ErrDatabase)
	}
	return &tracking, nil
}

func (r *einvoiceRepository) List(ctx context.Context, filter *types.EInvoiceTrackingFilter) ([]*einvoice.StatusTracking, error) {
	query := `SELECT ` + trackingColumns + ` FROM einvoice_status_tracking WHERE tenant_id = ?`
	args := []interface{}{types.GetTenantID(ctx)}

	if filter != nil {
		if len(filter.Statuses) > 0 {
			q, a, _ := sqlx.In(` AND einvoice_status IN (?)`, filter.Statuses)
			query += q
			args = append(args, a...)
		}
		if len(filter.InvoiceIDs) > 0 {
			q, a, _ := sqlx.In(` AND sales_invoice_id IN (?)`, filter.InvoiceIDs)
			query += q
			args = append(args, a...)
		}
	}

	query += ` ORDER BY updated_at DESC`
	if filter != nil && !filter.IsUnlimited() {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.GetLimit(), filter.GetOffset())
	}

	var rows []*einvoice.StatusTracking
	err := r.client.Querier(ctx).SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list e-invoice tracking").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}

func (r *einvoiceRepository) ListPending(ctx context.Context, updatedBefore time.Time, limit int) ([]*einvoice.StatusTracking, error) {
	query := `
		SELECT ` + trackingColumns + ` FROM einvoice_status_tracking
		WHERE tenant_id = $1
		  AND (einvoice_status IN ($2, $3, $4)
		       OR (einvoice_status = $5 AND provider_invoice_id IS NOT NULL))
		  AND updated_at < $6
		ORDER BY updated_at ASC
		LIMIT $7`

	var rows []*einvoice.StatusTracking
	err := r.client.Querier(ctx).SelectContext(ctx, &rows, query,
		types.GetTenantID(ctx),
		types.EInvoiceStatusSending, types.EInvoiceStatusSent, types.EInvoiceStatusDelivered,
		types.EInvoiceStatusError,
		updatedBefore, limit)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list pending e-invoices").
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}

func (r *einvoiceRepository) CreateLog(ctx context.Context, log *einvoice.OperationLog) error {
	query := `
		INSERT INTO einvoice_operation_logs
			(id, sales_invoice_id, operation, request, response, success,
			 error_message, duration_ms,
			 tenant_id, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :sales_invoice_id, :operation, :request, :response, :success,
			:error_message, :duration_ms,
			:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, log); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create e-invoice operation log").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *einvoiceRepository) ListLogs(ctx context.Context, salesInvoiceID string) ([]*einvoice.OperationLog, error) {
	query := `
		SELECT id, sales_invoice_id, operation, request, response, success,
			error_message, duration_ms,
			tenant_id, status, created_at, updated_at, created_by, updated_by
		FROM einvoice_operation_logs
		WHERE sales_invoice_id = $1 AND tenant_id = $2
		ORDER BY created_at DESC`

	var logs []*einvoice.OperationLog
	err := r.client.Querier(ctx).SelectContext(ctx, &logs, query,
		salesInvoiceID, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list e-invoice operation logs").
			Mark(ierr.ErrDatabase)
	}
	return logs, nil
}
