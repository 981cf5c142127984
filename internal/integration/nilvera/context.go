package nilvera

import (
	"context"
)

type contextKey string

const ctxInvoiceID contextKey = "nilvera_invoice_id"

// WithInvoiceID tags the context with the sales invoice a provider call is
// being made for, so audit records can be tied back to the invoice.
func WithInvoiceID(ctx context.Context, salesInvoiceID string) context.Context {
	return context.WithValue(ctx, ctxInvoiceID, salesInvoiceID)
}

// InvoiceIDFromContext returns the tagged sales invoice id, if any
func InvoiceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxInvoiceID).(string); ok {
		return id
	}
	return ""
}
