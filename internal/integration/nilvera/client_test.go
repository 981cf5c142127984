package nilvera

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/emretit/paftamobile-sub005/internal/cache"
	"github.com/emretit/paftamobile-sub005/internal/config"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/httpclient"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHTTPClient returns canned responses keyed on URL substring
type fakeHTTPClient struct {
	requests []*httpclient.Request
	handler  func(req *httpclient.Request) (*httpclient.Response, error)
}

func (f *fakeHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	f.requests = append(f.requests, req)
	return f.handler(req)
}

func newTestClient(t *testing.T, handler func(req *httpclient.Request) (*httpclient.Response, error)) (Client, *fakeHTTPClient) {
	t.Helper()

	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	fake := &fakeHTTPClient{handler: handler}
	c := NewClient(
		config.NilveraConfig{APIKey: "test-key"},
		fake,
		cache.NewInMemoryCache(),
		nil,
		log,
	)
	return c, fake
}

func jsonResponse(t *testing.T, v interface{}) *httpclient.Response {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return &httpclient.Response{StatusCode: http.StatusOK, Body: body}
}

func TestSendEInvoice(t *testing.T) {
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, map[string]string{
			"id":         "prov-123",
			"uuid":       "550e8400-e29b-41d4-a716-446655440000",
			"transferId": "tr-1",
		}), nil
	})

	resp, err := c.SendEInvoice(context.Background(), &InvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "prov-123", resp.InvoiceID)
	assert.Equal(t, "tr-1", resp.TransferID)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Contains(t, req.URL, "/einvoice/Send/Model")
	assert.Equal(t, "Bearer test-key", req.Headers["Authorization"])
}

func TestSendEInvoiceMissingID(t *testing.T) {
	c, _ := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, map[string]string{}), nil
	})

	_, err := c.SendEInvoice(context.Background(), &InvoiceRequest{})
	assert.True(t, ierr.IsProvider(err))
}

func TestSendEInvoiceProviderError(t *testing.T) {
	c, _ := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return nil, httpclient.NewError(http.StatusUnprocessableEntity,
			[]byte(`{"Message":"Gecersiz belge","Code":"E-422"}`))
	})

	_, err := c.SendEInvoice(context.Background(), &InvoiceRequest{})
	require.Error(t, err)
	assert.True(t, ierr.IsProvider(err))
	assert.Contains(t, err.Error(), "Gecersiz belge")
}

func TestGetInvoiceStatus(t *testing.T) {
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, map[string]interface{}{
			"InvoiceState": 2,
			"AnswerType":   0,
			"StatusDetail": "teslim edildi",
		}), nil
	})

	resp, err := c.GetInvoiceStatus(context.Background(), "prov-123")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.InvoiceState)
	assert.Equal(t, "teslim edildi", resp.StatusDetail)
	assert.Contains(t, fake.requests[0].URL, "/einvoice/Sale/prov-123/Status")
}

func TestGetInvoiceStatusRequiresID(t *testing.T) {
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, map[string]interface{}{}), nil
	})

	_, err := c.GetInvoiceStatus(context.Background(), "")
	assert.True(t, ierr.IsValidation(err))
	assert.Empty(t, fake.requests)
}

func TestCheckTaxNumber(t *testing.T) {
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, []map[string]interface{}{{
			"TaxNumber": "1234567890",
			"Title":     "Acme Ticaret Ltd.",
			"Aliases":   []map[string]string{{"Name": "urn:mail:pk@acme.com.tr"}},
		}}), nil
	})

	info, err := c.CheckTaxNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "urn:mail:pk@acme.com.tr", info.FirstAlias())
	assert.True(t, info.HasAlias("urn:mail:pk@acme.com.tr"))
	assert.False(t, info.HasAlias("urn:mail:other@acme.com.tr"))

	// Second lookup is served from cache
	_, err = c.CheckTaxNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Len(t, fake.requests, 1)
}

func TestCheckTaxNumberNotRegistered(t *testing.T) {
	c, _ := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return nil, httpclient.NewError(http.StatusNotFound, nil)
	})

	info, err := c.CheckTaxNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestCheckTaxNumberEmptyDirectoryResult(t *testing.T) {
	c, _ := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, []map[string]interface{}{}), nil
	})

	info, err := c.CheckTaxNumber(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestDownloadPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 fake")
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		if strings.Contains(req.URL, "/pdf") {
			return &httpclient.Response{StatusCode: http.StatusOK, Body: pdf}, nil
		}
		t.Fatalf("unexpected URL %s", req.URL)
		return nil, nil
	})

	body, err := c.DownloadPDF(context.Background(), "prov-123")
	require.NoError(t, err)
	assert.Equal(t, pdf, body)
	assert.Contains(t, fake.requests[0].URL, "/einvoice/Sale/prov-123/pdf")
}

func TestListInvoicesDefaultsPaging(t *testing.T) {
	c, fake := newTestClient(t, func(req *httpclient.Request) (*httpclient.Response, error) {
		return jsonResponse(t, map[string]interface{}{"Content": []interface{}{}}), nil
	})

	_, err := c.ListInvoices(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Contains(t, fake.requests[0].URL, "Page=1")
	assert.Contains(t, fake.requests[0].URL, "PageSize=50")
}
