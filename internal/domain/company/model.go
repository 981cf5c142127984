package company

import (
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// Company is the tenant's own billing identity used as the invoice issuer
type Company struct {
	// ID is the unique identifier for the company
	ID string `db:"id" json:"id"`

	// Name is the registered legal name
	Name string `db:"name" json:"name"`

	// TaxNumber is the company VKN
	TaxNumber string `db:"tax_number" json:"tax_number"`

	// TaxOffice is the tax office the company is registered with
	TaxOffice string `db:"tax_office" json:"tax_office"`

	// Email is the billing contact email
	Email string `db:"email" json:"email"`

	// Phone is the billing contact phone
	Phone string `db:"phone" json:"phone"`

	// Address fields
	AddressLine string `db:"address_line" json:"address_line"`
	District    string `db:"district" json:"district"`
	City        string `db:"city" json:"city"`
	Country     string `db:"country" json:"country"`
	PostalCode  string `db:"postal_code" json:"postal_code"`

	types.BaseModel
}

// Validate checks the structural validity of the company record
func (c *Company) Validate() error {
	if c.Name == "" {
		return ierr.NewError("company name is required").
			WithHint("Şirket adı boş olamaz").
			Mark(ierr.ErrValidation)
	}
	return nil
}
