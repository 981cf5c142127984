package testutil

import (
	"context"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}

	cp := *c
	if c.EInvoiceAlias != nil {
		alias := *c.EInvoiceAlias
		cp.EInvoiceAlias = &alias
	}
	if c.AliasCheckedAt != nil {
		t := *c.AliasCheckedAt
		cp.AliasCheckedAt = &t
	}
	return &cp
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetByTaxNumber(ctx context.Context, taxNumber string) (*customer.Customer, error) {
	filterFn := func(ctx context.Context, c *customer.Customer, _ interface{}) bool {
		return c.TaxNumber == taxNumber && c.TenantID == types.GetTenantID(ctx) &&
			c.Status != types.StatusDeleted
	}

	customers, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with tax number %s was not found", taxNumber).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(customers[0]), nil
}

func customerFilterFn(ctx context.Context, c *customer.Customer, filter interface{}) bool {
	if c.TenantID != types.GetTenantID(ctx) || c.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.CustomerFilter)
	if !ok || f == nil {
		return true
	}
	if f.TaxNumber != "" && c.TaxNumber != f.TaxNumber {
		return false
	}
	if len(f.CustomerIDs) > 0 {
		found := false
		for _, id := range f.CustomerIDs {
			if c.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func customerSortFn(i, j *customer.Customer) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.CustomerFilter) ([]*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, filter, customerFilterFn, customerSortFn)
	if err != nil {
		return nil, err
	}

	result := make([]*customer.Customer, len(items))
	for i, c := range items {
		result[i] = copyCustomer(c)
	}
	return result, nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.CustomerFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, customerFilterFn)
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c)); err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCustomerStore) UpdateEInvoiceAlias(ctx context.Context, id string, alias *string) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	cp := copyCustomer(c)
	cp.EInvoiceAlias = alias
	now := time.Now().UTC()
	cp.AliasCheckedAt = &now
	cp.UpdatedAt = now
	return s.InMemoryStore.Update(ctx, id, cp)
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	cp := copyCustomer(c)
	cp.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, cp)
}
