package nilvera

import (
	"github.com/shopspring/decimal"
)

// Wire types for the Nilvera e-invoice API. Field names follow the provider's
// UBL-TR derived schema and must not be renamed.

// InvoiceRequest is the payload for sending an e-invoice
type InvoiceRequest struct {
	EInvoice EInvoiceDocument `json:"EInvoice"`

	// CustomerAlias routes the document to a registered taxpayer's inbox.
	// It must be omitted entirely for recipients outside the e-invoice
	// network (TEMELFATURA profile).
	CustomerAlias string `json:"CustomerAlias,omitempty"`
}

// EInvoiceDocument is the nested document body
type EInvoiceDocument struct {
	InvoiceInfo  InvoiceInfo   `json:"InvoiceInfo"`
	CompanyInfo  PartyInfo     `json:"CompanyInfo"`
	CustomerInfo PartyInfo     `json:"CustomerInfo"`
	InvoiceLines []InvoiceLine `json:"InvoiceLines"`
	Notes        []string      `json:"Notes,omitempty"`
}

// InvoiceInfo carries the document header
type InvoiceInfo struct {
	UUID                 string `json:"UUID"`
	InvoiceSerieOrNumber string `json:"InvoiceSerieOrNumber"`
	IssueDate            string `json:"IssueDate"`
	InvoiceType          string `json:"InvoiceType"`
	InvoiceProfile       string `json:"InvoiceProfile"`
	CurrencyCode         string `json:"CurrencyCode"`
}

// PartyInfo describes the issuer or the recipient of the document
type PartyInfo struct {
	TaxNumber  string `json:"TaxNumber"`
	Name       string `json:"Name"`
	TaxOffice  string `json:"TaxOffice,omitempty"`
	Address    string `json:"Address,omitempty"`
	District   string `json:"District,omitempty"`
	City       string `json:"City,omitempty"`
	Country    string `json:"Country,omitempty"`
	PostalCode string `json:"PostalCode,omitempty"`
	Phone      string `json:"Phone,omitempty"`
	Mail       string `json:"Mail,omitempty"`
}

// InvoiceLine is one billed row on the document
type InvoiceLine struct {
	Name            string          `json:"Name"`
	Quantity        decimal.Decimal `json:"Quantity"`
	UnitType        string          `json:"UnitType"`
	Price           decimal.Decimal `json:"Price"`
	KDVPercent      decimal.Decimal `json:"KDVPercent"`
	DiscountPercent decimal.Decimal `json:"DiscountPercent"`
	Total           decimal.Decimal `json:"Total"`
}

// SendResponse is returned by the provider on a successful send
type SendResponse struct {
	InvoiceID  string `json:"id"`
	UUID       string `json:"uuid,omitempty"`
	TransferID string `json:"transferId,omitempty"`
}

// StatusResponse is returned by a status poll. InvoiceState and AnswerType
// are the provider's numeric lifecycle codes.
type StatusResponse struct {
	UUID         string `json:"UUID"`
	InvoiceState int    `json:"InvoiceState"`
	AnswerType   int    `json:"AnswerType"`
	AnswerCode   string `json:"AnswerCode,omitempty"`
	TransferID   string `json:"TransferID,omitempty"`
	StatusDetail string `json:"StatusDetail,omitempty"`
}

// GlobalCompanyInfo is a directory lookup result for a tax number
type GlobalCompanyInfo struct {
	TaxNumber string  `json:"TaxNumber"`
	Title     string  `json:"Title"`
	Aliases   []Alias `json:"Aliases"`
}

// Alias is one registered inbox of a taxpayer in the provider directory
type Alias struct {
	Name         string `json:"Name"`
	CreationTime string `json:"CreationTime,omitempty"`
}

// FirstAlias returns the first registered alias name, or empty when the
// taxpayer has none.
func (g *GlobalCompanyInfo) FirstAlias() string {
	if g == nil || len(g.Aliases) == 0 {
		return ""
	}
	return g.Aliases[0].Name
}

// HasAlias reports whether the given alias is currently registered
func (g *GlobalCompanyInfo) HasAlias(alias string) bool {
	if g == nil || alias == "" {
		return false
	}
	for _, a := range g.Aliases {
		if a.Name == alias {
			return true
		}
	}
	return false
}

// ListedInvoice is one row of a sale-invoice listing
type ListedInvoice struct {
	UUID                 string `json:"UUID"`
	InvoiceSerieOrNumber string `json:"InvoiceNumber"`
	InvoiceState         int    `json:"InvoiceState"`
	AnswerType           int    `json:"AnswerType"`
	IssueDate            string `json:"IssueDate"`
}

// ListResponse wraps a paged invoice listing
type ListResponse struct {
	Content    []ListedInvoice `json:"Content"`
	TotalCount int             `json:"TotalCount"`
	Page       int             `json:"Page"`
	PageSize   int             `json:"PageSize"`
}

// ErrorResponse is the provider's error envelope
type ErrorResponse struct {
	Message string `json:"Message"`
	Code    string `json:"Code,omitempty"`
	Errors  []struct {
		Description string `json:"Description"`
	} `json:"Errors,omitempty"`
}
