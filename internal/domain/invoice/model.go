package invoice

import (
	"time"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// SalesInvoice represents the sales invoice header
type SalesInvoice struct {
	ID string `db:"id" json:"id"`

	// InvoiceNumber is the user-visible document number, e.g. PFT-XYZ12A8Q
	InvoiceNumber string `db:"invoice_number" json:"invoice_number"`

	// CustomerID references the billed counterparty
	CustomerID string `db:"customer_id" json:"customer_id"`

	// IssueDate is the legal issue date of the document
	IssueDate time.Time `db:"issue_date" json:"issue_date"`

	// Currency is the three-letter currency code, TRY unless stated otherwise
	Currency string `db:"currency" json:"currency"`

	// SubtotalAmount is the sum of line totals before tax
	SubtotalAmount decimal.Decimal `db:"subtotal_amount" json:"subtotal_amount"`

	// TaxAmount is the total VAT across all lines
	TaxAmount decimal.Decimal `db:"tax_amount" json:"tax_amount"`

	// TotalAmount is the grand total including tax
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`

	// InvoiceStatus tracks the user-visible send state (taslak/gonderildi/hata)
	InvoiceStatus types.SalesInvoiceStatus `db:"invoice_status" json:"invoice_status"`

	// Notes is free-form text carried onto the document
	Notes string `db:"notes" json:"notes,omitempty"`

	// LineItems are loaded on demand, nil unless fetched with lines
	LineItems []*LineItem `json:"line_items,omitempty"`

	types.BaseModel
}

// LineItem is one billed item on a sales invoice. Line items are treated as
// immutable once the parent invoice has been sent.
type LineItem struct {
	ID        string `db:"id" json:"id"`
	InvoiceID string `db:"invoice_id" json:"invoice_id"`

	// Name is the item description shown on the document
	Name string `db:"name" json:"name"`

	// Quantity of units billed
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// UnitPrice is the price per unit before tax and discount
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`

	// TaxRate is the VAT percentage applied to the line (e.g. 18)
	TaxRate decimal.Decimal `db:"tax_rate" json:"tax_rate"`

	// DiscountRate is the discount percentage applied before tax (e.g. 10)
	DiscountRate decimal.Decimal `db:"discount_rate" json:"discount_rate"`

	// TotalAmount is the line total after discount, before tax
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`

	types.BaseModel
}

var oneHundred = decimal.NewFromInt(100)

// NetAmount returns quantity * unit price less the discount
func (li *LineItem) NetAmount() decimal.Decimal {
	gross := li.Quantity.Mul(li.UnitPrice)
	if li.DiscountRate.IsZero() {
		return gross
	}
	discount := gross.Mul(li.DiscountRate).Div(oneHundred)
	return gross.Sub(discount)
}

// TaxAmount returns the VAT charged on the line's net amount
func (li *LineItem) TaxAmount() decimal.Decimal {
	return li.NetAmount().Mul(li.TaxRate).Div(oneHundred)
}

func (li *LineItem) Validate() error {
	if li.Name == "" {
		return ierr.NewError("line item name is required").
			WithHint("Fatura satırı adı boş olamaz").
			Mark(ierr.ErrValidation)
	}
	if li.Quantity.IsNegative() || li.Quantity.IsZero() {
		return ierr.NewError("line item quantity must be positive").
			WithHint("Miktar sıfırdan büyük olmalıdır").
			Mark(ierr.ErrValidation)
	}
	if li.UnitPrice.IsNegative() {
		return ierr.NewError("line item unit price must be non negative").
			WithHint("Birim fiyat negatif olamaz").
			Mark(ierr.ErrValidation)
	}
	if li.TaxRate.IsNegative() || li.TaxRate.GreaterThan(oneHundred) {
		return ierr.NewError("line item tax rate out of range").
			WithHint("KDV oranı 0 ile 100 arasında olmalıdır").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ComputeTotals recalculates header totals from the loaded line items
func (inv *SalesInvoice) ComputeTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, li := range inv.LineItems {
		subtotal = subtotal.Add(li.NetAmount())
		tax = tax.Add(li.TaxAmount())
	}
	inv.SubtotalAmount = subtotal
	inv.TaxAmount = tax
	inv.TotalAmount = subtotal.Add(tax)
}

// Validate checks the structural validity of the invoice and, when line items
// are loaded, that the header total matches the sum of line totals. Header and
// line totals are persisted independently, so a drifted header is rejected
// here instead of being silently sent to the provider.
func (inv *SalesInvoice) Validate() error {
	if inv.CustomerID == "" {
		return ierr.NewError("customer is required").
			WithHint("Fatura için müşteri seçilmelidir").
			Mark(ierr.ErrValidation)
	}
	if inv.Currency == "" {
		return ierr.NewError("currency is required").
			WithHint("Para birimi boş olamaz").
			Mark(ierr.ErrValidation)
	}
	if inv.TotalAmount.IsNegative() {
		return ierr.NewError("total amount must be non negative").
			WithHint("Fatura tutarı negatif olamaz").
			Mark(ierr.ErrValidation)
	}

	if inv.LineItems == nil {
		return nil
	}

	subtotal := decimal.Zero
	for _, li := range inv.LineItems {
		if err := li.Validate(); err != nil {
			return err
		}
		subtotal = subtotal.Add(li.TotalAmount)
	}
	if !subtotal.Equal(inv.SubtotalAmount) {
		return ierr.NewError("invoice totals do not match line items").
			WithHint("Fatura toplamı satır toplamları ile uyuşmuyor").
			WithReportableDetails(map[string]any{
				"header_subtotal": inv.SubtotalAmount.String(),
				"lines_subtotal":  subtotal.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsSent reports whether the invoice has already been submitted successfully
func (inv *SalesInvoice) IsSent() bool {
	return inv.InvoiceStatus == types.SalesInvoiceStatusGonderildi
}
