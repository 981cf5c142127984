package company

import (
	"context"
)

// Repository defines the interface for company data access
type Repository interface {
	Create(ctx context.Context, company *Company) error
	Get(ctx context.Context, id string) (*Company, error)

	// GetByTenant returns the billing identity of the current tenant. Every
	// e-invoice is issued under exactly one company per tenant.
	GetByTenant(ctx context.Context) (*Company, error)

	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id string) error
}
