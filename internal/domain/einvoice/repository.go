package einvoice

import (
	"context"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/types"
)

// Repository defines the interface for e-invoice tracking data access
type Repository interface {
	// Upsert writes the tracking row keyed on (sales_invoice_id, tenant_id).
	// The write is guarded by the row's version: the caller passes the row
	// with the version it read plus one, and the write fails with a version
	// conflict error when another writer got there first. A fresh insert uses
	// version 1.
	Upsert(ctx context.Context, tracking *StatusTracking) error

	// GetByInvoiceID returns the tracking row for the given sales invoice
	GetByInvoiceID(ctx context.Context, salesInvoiceID string) (*StatusTracking, error)

	List(ctx context.Context, filter *types.EInvoiceTrackingFilter) ([]*StatusTracking, error)

	// ListPending returns rows still awaiting a provider-side resolution
	// last updated before the cutoff, for bulk refresh: sending, sent and
	// delivered rows, plus error rows that already have a provider invoice
	// id (a failed poll there may have been transient).
	ListPending(ctx context.Context, updatedBefore time.Time, limit int) ([]*StatusTracking, error)

	// CreateLog appends an operation audit record. Failures are expected to
	// be swallowed by the caller; the log must never block the main flow.
	CreateLog(ctx context.Context, log *OperationLog) error

	// ListLogs returns the audit trail for a sales invoice, newest first
	ListLogs(ctx context.Context, salesInvoiceID string) ([]*OperationLog, error)
}
