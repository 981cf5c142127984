package customer

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/types"
)

// Repository defines the interface for customer data access
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	GetByTaxNumber(ctx context.Context, taxNumber string) (*Customer, error)
	List(ctx context.Context, filter *types.CustomerFilter) ([]*Customer, error)
	Count(ctx context.Context, filter *types.CustomerFilter) (int, error)
	Update(ctx context.Context, customer *Customer) error

	// UpdateEInvoiceAlias persists a refreshed directory alias for the
	// customer. This is the only write path for the alias cache; alias
	// resolution itself never writes.
	UpdateEInvoiceAlias(ctx context.Context, id string, alias *string) error

	Delete(ctx context.Context, id string) error
}
