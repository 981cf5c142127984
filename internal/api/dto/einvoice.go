package dto

import (
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
)

// SendEInvoiceResponse is the trigger endpoint response. Success false means
// the send failed and the failure detail was recorded on the tracking row.
type SendEInvoiceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type EInvoiceTrackingResponse struct {
	*einvoice.StatusTracking
}

type EInvoiceLogResponse struct {
	*einvoice.OperationLog
}

type ListEInvoiceLogsResponse struct {
	Items []*EInvoiceLogResponse `json:"items"`
}

// RefreshPendingResponse summarizes a bulk status reconciliation run
type RefreshPendingResponse struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// ProviderInvoiceResponse is one row of the provider-side document listing
type ProviderInvoiceResponse struct {
	UUID          string `json:"uuid"`
	InvoiceNumber string `json:"invoice_number"`
	InvoiceState  int    `json:"invoice_state"`
	AnswerType    int    `json:"answer_type"`
	IssueDate     string `json:"issue_date"`
}

// ListProviderInvoicesResponse wraps a page of provider-side documents
type ListProviderInvoicesResponse struct {
	Items      []*ProviderInvoiceResponse `json:"items"`
	TotalCount int                        `json:"total_count"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"page_size"`
}
