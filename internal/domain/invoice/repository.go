package invoice

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/types"
)

// Repository defines the interface for sales invoice data access
type Repository interface {
	Create(ctx context.Context, inv *SalesInvoice) error
	Get(ctx context.Context, id string) (*SalesInvoice, error)

	// GetWithLines returns the invoice with its line items loaded
	GetWithLines(ctx context.Context, id string) (*SalesInvoice, error)

	List(ctx context.Context, filter *types.SalesInvoiceFilter) ([]*SalesInvoice, error)
	Count(ctx context.Context, filter *types.SalesInvoiceFilter) (int, error)
	Update(ctx context.Context, inv *SalesInvoice) error

	// UpdateStatus transitions only the user-visible invoice status
	UpdateStatus(ctx context.Context, id string, status types.SalesInvoiceStatus) error

	Delete(ctx context.Context, id string) error

	// CreateLineItems inserts line items for an invoice
	CreateLineItems(ctx context.Context, invoiceID string, items []*LineItem) error
}
