package dto

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/emretit/paftamobile-sub005/internal/validator"
)

type CreateCustomerRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	TaxNumber          string `json:"tax_number" validate:"omitempty,numeric,min=10,max=11"`
	TaxOffice          string `json:"tax_office" validate:"omitempty,max=100"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone" validate:"omitempty,max=32"`
	AddressLine        string `json:"address_line" validate:"omitempty,max=255"`
	District           string `json:"district" validate:"omitempty,max=100"`
	City               string `json:"city" validate:"omitempty,max=100"`
	Country            string `json:"country" validate:"omitempty,max=100"`
	PostalCode         string `json:"postal_code" validate:"omitempty,max=20"`
	IsEInvoiceMukellef bool   `json:"is_einvoice_mukellef"`
}

type UpdateCustomerRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=255"`
	TaxNumber          *string `json:"tax_number" validate:"omitempty,numeric,min=10,max=11"`
	TaxOffice          *string `json:"tax_office" validate:"omitempty,max=100"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Phone              *string `json:"phone" validate:"omitempty,max=32"`
	AddressLine        *string `json:"address_line" validate:"omitempty,max=255"`
	District           *string `json:"district" validate:"omitempty,max=100"`
	City               *string `json:"city" validate:"omitempty,max=100"`
	Country            *string `json:"country" validate:"omitempty,max=100"`
	PostalCode         *string `json:"postal_code" validate:"omitempty,max=20"`
	IsEInvoiceMukellef *bool   `json:"is_einvoice_mukellef"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:               r.Name,
		TaxNumber:          r.TaxNumber,
		TaxOffice:          r.TaxOffice,
		Email:              r.Email,
		Phone:              r.Phone,
		AddressLine:        r.AddressLine,
		District:           r.District,
		City:               r.City,
		Country:            r.Country,
		PostalCode:         r.PostalCode,
		IsEInvoiceMukellef: r.IsEInvoiceMukellef,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply merges the non-nil fields of the request into the customer
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
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
	if r.IsEInvoiceMukellef != nil {
		c.IsEInvoiceMukellef = *r.IsEInvoiceMukellef
	}
}
