package dto

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/emretit/paftamobile-sub005/internal/validator"
)

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	TaxNumber   string `json:"tax_number" validate:"required,numeric,len=10"`
	TaxOffice   string `json:"tax_office" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	AddressLine string `json:"address_line" validate:"omitempty,max=255"`
	District    string `json:"district" validate:"omitempty,max=100"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Country     string `json:"country" validate:"omitempty,max=100"`
	PostalCode  string `json:"postal_code" validate:"omitempty,max=20"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	TaxNumber   *string `json:"tax_number" validate:"omitempty,numeric,len=10"`
	TaxOffice   *string `json:"tax_office" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	AddressLine *string `json:"address_line" validate:"omitempty,max=255"`
	District    *string `json:"district" validate:"omitempty,max=100"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,max=20"`
}

type CompanyResponse struct {
	*company.Company
}

func (r *CreateCompanyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCompanyRequest) ToCompany(ctx context.Context) *company.Company {
	return &company.Company{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		Name:        r.Name,
		TaxNumber:   r.TaxNumber,
		TaxOffice:   r.TaxOffice,
		Email:       r.Email,
		Phone:       r.Phone,
		AddressLine: r.AddressLine,
		District:    r.District,
		City:        r.City,
		Country:     r.Country,
		PostalCode:  r.PostalCode,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCompanyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply merges the non-nil fields of the request into the company
func (r *UpdateCompanyRequest) Apply(c *company.Company) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.TaxNumber != nil {
		c.TaxNumber = *r.TaxNumber
	}
	if r.TaxOffice != nil {
		c.TaxOffice = *r.TaxOffice
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.AddressLine != nil {
		c.AddressLine = *r.AddressLine
	}
	if r.District != nil {
		c.District = *r.District
	}
	if r.City != nil {
		c.City = *r.City
	}
	if r.Country != nil {
		c.Country = *r.Country
	}
	if r.PostalCode != nil {
		c.PostalCode = *r.PostalCode
	}
}
