package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.SalesInvoice]

	mu    sync.RWMutex
	lines map[string][]*invoice.LineItem
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.SalesInvoice](),
		lines:         make(map[string][]*invoice.LineItem),
	}
}

func copyInvoice(inv *invoice.SalesInvoice) *invoice.SalesInvoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.LineItems = nil
	return &cp
}

func copyLineItem(li *invoice.LineItem) *invoice.LineItem {
	if li == nil {
		return nil
	}
	cp := *li
	return &cp
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.SalesInvoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.SalesInvoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv.Status == types.StatusDeleted {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetWithLines(ctx context.Context, id string) (*invoice.SalesInvoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, li := range s.lines[id] {
		inv.LineItems = append(inv.LineItems, copyLineItem(li))
	}
	return inv, nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.SalesInvoice, filter interface{}) bool {
	if inv.TenantID != types.GetTenantID(ctx) || inv.Status == types.StatusDeleted {
		return false
	}

	f, ok := filter.(*types.SalesInvoiceFilter)
	if !ok || f == nil {
		return true
	}
	if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
		return false
	}
	if f.InvoiceStatus != "" && inv.InvoiceStatus != f.InvoiceStatus {
		return false
	}
	if len(f.InvoiceIDs) > 0 {
		found := false
		for _, id := range f.InvoiceIDs {
			if inv.ID == id {
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

func invoiceSortFn(i, j *invoice.SalesInvoice) bool {
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.SalesInvoiceFilter) ([]*invoice.SalesInvoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}

	result := make([]*invoice.SalesInvoice, len(items))
	for i, inv := range items {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.SalesInvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.SalesInvoice) error {
	if err := s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, id string, status types.SalesInvoiceStatus) error {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	cp := copyInvoice(inv)
	cp.InvoiceStatus = status
	cp.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, cp)
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	cp := copyInvoice(inv)
	cp.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, cp)
}

func (s *InMemoryInvoiceStore) CreateLineItems(ctx context.Context, invoiceID string, items []*invoice.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, li := range items {
		s.lines[invoiceID] = append(s.lines[invoiceID], copyLineItem(li))
	}
	return nil
}
