package einvoice

import (
	"context"
	"time"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// StatusTracking is the single mutable record per sales invoice that mirrors
// the provider-side lifecycle of the e-invoice document. There is at most one
// active row per (sales invoice, tenant), enforced by the repository upsert.
type StatusTracking struct {
	ID string `db:"id" json:"id"`

	// SalesInvoiceID references the parent sales invoice
	SalesInvoiceID string `db:"sales_invoice_id" json:"sales_invoice_id"`

	// ProviderInvoiceID is the document id assigned by the provider on send
	ProviderInvoiceID *string `db:"provider_invoice_id" json:"provider_invoice_id,omitempty"`

	// TransferID is the provider-side transfer batch id, when reported
	TransferID *string `db:"transfer_id" json:"transfer_id,omitempty"`

	// EInvoiceStatus is the lifecycle state of the document
	EInvoiceStatus types.EInvoiceStatus `db:"einvoice_status" json:"einvoice_status"`

	// InvoiceState and AnswerType are the provider's raw numeric codes from
	// the last status poll, kept for auditing alongside the mapped status.
	InvoiceState *int `db:"invoice_state" json:"invoice_state,omitempty"`
	AnswerType   *int `db:"answer_type" json:"answer_type,omitempty"`

	// AnswerCode carries the recipient's application response code, if any
	AnswerCode *string `db:"answer_code" json:"answer_code,omitempty"`

	// Lifecycle timestamps
	SentAt      *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	RespondedAt *time.Time `db:"responded_at" json:"responded_at,omitempty"`

	// ErrorMessage and ErrorCode are populated on error transitions
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`
	ErrorCode    *string `db:"error_code" json:"error_code,omitempty"`

	// LastResponse is a raw copy of the most recent provider response
	LastResponse types.Metadata `db:"last_response" json:"last_response,omitempty"`

	// Version is an optimistic concurrency guard. Every write increments it;
	// a write based on a stale version is rejected by the repository.
	Version int `db:"version" json:"version"`

	types.BaseModel
}

// NewStatusTracking returns a draft tracking row for the invoice
func NewStatusTracking(ctx context.Context, salesInvoiceID string) *StatusTracking {
	return &StatusTracking{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EINVOICE_TRACKING),
		SalesInvoiceID: salesInvoiceID,
		EInvoiceStatus: types.EInvoiceStatusDraft,
		Version:        0,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// TransitionTo moves the tracking row to the target status, applying the
// lifecycle rules and stamping the relevant timestamp. Illegal transitions
// return an invalid operation error and leave the row untouched.
func (t *StatusTracking) TransitionTo(target types.EInvoiceStatus, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !t.EInvoiceStatus.CanTransition(target) {
		return ierr.NewError("illegal e-invoice status transition").
			WithHintf("Durum %s -> %s geçişi yapılamaz", t.EInvoiceStatus, target).
			WithReportableDetails(map[string]any{
				"from": t.EInvoiceStatus,
				"to":   target,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	t.EInvoiceStatus = target
	switch target {
	case types.EInvoiceStatusSent:
		t.SentAt = &now
	case types.EInvoiceStatusDelivered:
		t.DeliveredAt = &now
	case types.EInvoiceStatusAccepted, types.EInvoiceStatusRejected:
		t.RespondedAt = &now
	}
	t.UpdatedAt = now
	return nil
}

// MarkError forces the row into the error state with the failure detail.
// Error is reachable from every state so this cannot fail.
func (t *StatusTracking) MarkError(message string, code *string, now time.Time) {
	t.EInvoiceStatus = types.EInvoiceStatusError
	t.ErrorMessage = &message
	t.ErrorCode = code
	t.UpdatedAt = now
}

// ClearError resets failure detail before a new attempt
func (t *StatusTracking) ClearError() {
	t.ErrorMessage = nil
	t.ErrorCode = nil
}

// OperationLog is an append-only audit record of a single provider call. It
// is never read back for recovery.
type OperationLog struct {
	ID string `db:"id" json:"id"`

	// SalesInvoiceID references the invoice the call was made for, when known
	SalesInvoiceID *string `db:"sales_invoice_id" json:"sales_invoice_id,omitempty"`

	// Operation is the provider call name, e.g. send_einvoice, check_status
	Operation string `db:"operation" json:"operation"`

	// Request and Response hold the raw payloads for auditing
	Request  types.Metadata `db:"request" json:"request,omitempty"`
	Response types.Metadata `db:"response" json:"response,omitempty"`

	// Success reports whether the call completed without error
	Success bool `db:"success" json:"success"`

	// ErrorMessage holds the failure detail for unsuccessful calls
	ErrorMessage *string `db:"error_message" json:"error_message,omitempty"`

	// DurationMS is the wall-clock duration of the provider call
	DurationMS int64 `db:"duration_ms" json:"duration_ms"`

	types.BaseModel
}
