package dto

import (
	"context"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/emretit/paftamobile-sub005/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	CustomerID string                         `json:"customer_id" validate:"required"`
	IssueDate  *time.Time                     `json:"issue_date"`
	Currency   string                         `json:"currency" validate:"omitempty,len=3"`
	Notes      string                         `json:"notes" validate:"omitempty,max=1000"`
	LineItems  []CreateInvoiceLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type CreateInvoiceLineItemRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

type SalesInvoiceResponse struct {
	*invoice.SalesInvoice
}

// ListInvoicesResponse represents the response for listing sales invoices
type ListInvoicesResponse = types.ListResponse[*SalesInvoiceResponse]

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToSalesInvoice builds the invoice with its line items and computes the
// header totals from the lines.
func (r *CreateInvoiceRequest) ToSalesInvoice(ctx context.Context) *invoice.SalesInvoice {
	issueDate := time.Now().UTC()
	if r.IssueDate != nil {
		issueDate = r.IssueDate.UTC()
	}
	currency := r.Currency
	if currency == "" {
		currency = "TRY"
	}

	inv := &invoice.SalesInvoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_INVOICE),
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_SALES_INVOICE),
		CustomerID:    r.CustomerID,
		IssueDate:     issueDate,
		Currency:      currency,
		Notes:         r.Notes,
		InvoiceStatus: types.SalesInvoiceStatusTaslak,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	for _, li := range r.LineItems {
		line := &invoice.LineItem{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_INVOICE_LINE),
			InvoiceID:    inv.ID,
			Name:         li.Name,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			TaxRate:      li.TaxRate,
			DiscountRate: li.DiscountRate,
			BaseModel:    types.GetDefaultBaseModel(ctx),
		}
		line.TotalAmount = line.NetAmount()
		inv.LineItems = append(inv.LineItems, line)
	}

	inv.ComputeTotals()
	return inv
}
