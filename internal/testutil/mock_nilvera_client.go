package testutil

import (
	"context"
	"sync"

	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
)

var _ nilvera.Client = (*MockNilveraClient)(nil)

// MockNilveraClient is a configurable in-memory stand-in for the provider
// API. Each call records itself so tests can assert on what went over the
// wire.
type MockNilveraClient struct {
	mu sync.Mutex

	SendFunc     func(ctx context.Context, req *nilvera.InvoiceRequest) (*nilvera.SendResponse, error)
	StatusFunc   func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error)
	CheckFunc    func(ctx context.Context, taxNumber string) (*nilvera.GlobalCompanyInfo, error)
	ListFunc     func(ctx context.Context, page, pageSize int) (*nilvera.ListResponse, error)
	DownloadFunc func(ctx context.Context, providerInvoiceID string) ([]byte, error)

	SentRequests   []*nilvera.InvoiceRequest
	StatusRequests []string
}

func NewMockNilveraClient() *MockNilveraClient {
	return &MockNilveraClient{}
}

func (m *MockNilveraClient) SendEInvoice(ctx context.Context, req *nilvera.InvoiceRequest) (*nilvera.SendResponse, error) {
	m.mu.Lock()
	m.SentRequests = append(m.SentRequests, req)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return &nilvera.SendResponse{InvoiceID: "mock-invoice-id"}, nil
}

func (m *MockNilveraClient) GetInvoiceStatus(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
	m.mu.Lock()
	m.StatusRequests = append(m.StatusRequests, providerInvoiceID)
	m.mu.Unlock()

	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, providerInvoiceID)
	}
	return &nilvera.StatusResponse{InvoiceState: 1}, nil
}

func (m *MockNilveraClient) CheckTaxNumber(ctx context.Context, taxNumber string) (*nilvera.GlobalCompanyInfo, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, taxNumber)
	}
	return nil, nil
}

func (m *MockNilveraClient) ListInvoices(ctx context.Context, page, pageSize int) (*nilvera.ListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize)
	}
	return &nilvera.ListResponse{}, nil
}

func (m *MockNilveraClient) DownloadPDF(ctx context.Context, providerInvoiceID string) ([]byte, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, providerInvoiceID)
	}
	return nil, ierr.NewError("no pdf configured").Mark(ierr.ErrNotFound)
}

// LastSentRequest returns the most recent send payload, or nil
func (m *MockNilveraClient) LastSentRequest() *nilvera.InvoiceRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentRequests) == 0 {
		return nil
	}
	return m.SentRequests[len(m.SentRequests)-1]
}
