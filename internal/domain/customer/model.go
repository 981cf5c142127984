package customer

import (
	"time"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// Customer represents a billing counterparty
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the legal name of the customer
	Name string `db:"name" json:"name"`

	// TaxNumber is the customer's VKN (10 digits) or TCKN (11 digits)
	TaxNumber string `db:"tax_number" json:"tax_number"`

	// TaxOffice is the tax office the customer is registered with
	TaxOffice string `db:"tax_office" json:"tax_office"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// Phone is the phone number of the customer
	Phone string `db:"phone" json:"phone"`

	// Address fields
	AddressLine  string `db:"address_line" json:"address_line"`
	District     string `db:"district" json:"district"`
	City         string `db:"city" json:"city"`
	Country      string `db:"country" json:"country"`
	PostalCode   string `db:"postal_code" json:"postal_code"`

	// IsEInvoiceMukellef reports whether the customer is registered on the
	// national e-invoice network. It drives invoice profile selection.
	IsEInvoiceMukellef bool `db:"is_einvoice_mukellef" json:"is_einvoice_mukellef"`

	// EInvoiceAlias is a cached copy of the provider-directory alias used to
	// route documents to the customer's inbox. It can go stale and must be
	// confirmed against the directory before use.
	EInvoiceAlias *string `db:"einvoice_alias_name" json:"einvoice_alias_name,omitempty"`

	// AliasCheckedAt records when the alias cache was last confirmed
	AliasCheckedAt *time.Time `db:"alias_checked_at" json:"alias_checked_at,omitempty"`

	types.BaseModel
}

// HasValidAlias reports whether a non-empty alias is cached for the customer
func (c *Customer) HasValidAlias() bool {
	return c.EInvoiceAlias != nil && *c.EInvoiceAlias != ""
}

// Validate checks the structural validity of the customer record
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Müşteri adı boş olamaz").
			Mark(ierr.ErrValidation)
	}
	if err := ValidateTaxNumber(c.TaxNumber); err != nil {
		return err
	}
	return nil
}

// ValidateTaxNumber checks that a tax number is a 10-digit VKN or an 11-digit
// TCKN. An empty value is allowed at rest; send-time validation is stricter.
func ValidateTaxNumber(taxNumber string) error {
	if taxNumber == "" {
		return nil
	}
	if len(taxNumber) != 10 && len(taxNumber) != 11 {
		return ierr.NewError("invalid tax number").
			WithHint("Vergi numarası 10 veya 11 haneli olmalıdır").
			WithReportableDetails(map[string]any{
				"tax_number": taxNumber,
			}).
			Mark(ierr.ErrValidation)
	}
	for _, r := range taxNumber {
		if r < '0' || r > '9' {
			return ierr.NewError("invalid tax number").
				WithHint("Vergi numarası yalnızca rakamlardan oluşmalıdır").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
