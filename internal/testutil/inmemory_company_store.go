package testutil

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// InMemoryCompanyStore implements company.Repository
type InMemoryCompanyStore struct {
	*InMemoryStore[*company.Company]
}

func NewInMemoryCompanyStore() *InMemoryCompanyStore {
	return &InMemoryCompanyStore{
		InMemoryStore: NewInMemoryStore[*company.Company](),
	}
}

func copyCompany(c *company.Company) *company.Company {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemoryCompanyStore) Create(ctx context.Context, c *company.Company) error {
	existing, _ := s.GetByTenant(ctx)
	if existing != nil {
		return ierr.NewError("company already exists").
			WithHint("Bu hesap için bir şirket profili zaten tanımlı").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCompany(c))
}

func (s *InMemoryCompanyStore) Get(ctx context.Context, id string) (*company.Company, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("company not found").
			WithHintf("Company with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCompany(c), nil
}

func (s *InMemoryCompanyStore) GetByTenant(ctx context.Context) (*company.Company, error) {
	filterFn := func(ctx context.Context, c *company.Company, _ interface{}) bool {
		return c.TenantID == types.GetTenantID(ctx) && c.Status == types.StatusPublished
	}

	companies, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, ierr.NewError("company not found").
			WithHint("Şirket profili tanımlı değil, önce şirket bilgilerini girin").
			Mark(ierr.ErrNotFound)
	}
	return copyCompany(companies[0]), nil
}

func (s *InMemoryCompanyStore) Update(ctx context.Context, c *company.Company) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, copyCompany(c)); err != nil {
		return ierr.NewError("company not found").
			WithHintf("Company with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryCompanyStore) Delete(ctx context.Context, id string) error {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("company not found").
			WithHintf("Company with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	cp := copyCompany(c)
	cp.Status = types.StatusDeleted
	return s.InMemoryStore.Update(ctx, id, cp)
}
