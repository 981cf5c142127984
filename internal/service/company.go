package service

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// CompanyService manages the tenant's billing identity
type CompanyService interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetCompany(ctx context.Context, id string) (*dto.CompanyResponse, error)
	GetTenantCompany(ctx context.Context) (*dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, id string, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
}

type companyService struct {
	ServiceParams
}

func NewCompanyService(params ServiceParams) CompanyService {
	return &companyService{ServiceParams: params}
}

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// One billing identity per tenant
	if existing, err := s.CompanyRepo.GetByTenant(ctx); err == nil && existing != nil {
		return nil, ierr.NewError("company already exists for tenant").
			WithHint("Bu hesap için şirket zaten tanımlı").
			Mark(ierr.ErrAlreadyExists)
	}

	comp := req.ToCompany(ctx)
	if err := comp.Validate(); err != nil {
		return nil, err
	}

	if err := s.CompanyRepo.Create(ctx, comp); err != nil {
		return nil, err
	}

	return &dto.CompanyResponse{Company: comp}, nil
}

func (s *companyService) GetCompany(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	comp, err := s.CompanyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{Company: comp}, nil
}

func (s *companyService) GetTenantCompany(ctx context.Context) (*dto.CompanyResponse, error) {
	comp, err := s.CompanyRepo.GetByTenant(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{Company: comp}, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, id string, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comp, err := s.CompanyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(comp)
	if err := comp.Validate(); err != nil {
		return nil, err
	}

	comp.UpdatedBy = types.GetUserID(ctx)
	if err := s.CompanyRepo.Update(ctx, comp); err != nil {
		return nil, err
	}

	return &dto.CompanyResponse{Company: comp}, nil
}
