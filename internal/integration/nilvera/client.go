package nilvera

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/cache"
	"github.com/emretit/paftamobile-sub005/internal/config"
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/httpclient"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

const (
	OperationSendEInvoice   = "send_einvoice"
	OperationCheckStatus    = "check_status"
	OperationCheckTaxNumber = "check_tax_number"
	OperationListInvoices   = "list_invoices"
	OperationDownloadPDF    = "download_pdf"
)

// aliasCacheTTL bounds how long a directory lookup is reused before the
// provider is asked again.
const aliasCacheTTL = 30 * time.Minute

// Client defines the provider API operations used by the e-invoice flow
type Client interface {
	// SendEInvoice submits a document for delivery
	SendEInvoice(ctx context.Context, req *InvoiceRequest) (*SendResponse, error)

	// GetInvoiceStatus polls the lifecycle state of a sent document
	GetInvoiceStatus(ctx context.Context, providerInvoiceID string) (*StatusResponse, error)

	// CheckTaxNumber looks up a tax number in the provider directory. A nil
	// result with no error means the taxpayer is not registered.
	CheckTaxNumber(ctx context.Context, taxNumber string) (*GlobalCompanyInfo, error)

	// ListInvoices returns a page of outgoing documents
	ListInvoices(ctx context.Context, page, pageSize int) (*ListResponse, error)

	// DownloadPDF fetches the rendered PDF of a sent document
	DownloadPDF(ctx context.Context, providerInvoiceID string) ([]byte, error)
}

// OperationRecorder persists audit records of provider calls. Implementations
// must swallow their own failures; auditing never blocks the main flow.
type OperationRecorder interface {
	Record(ctx context.Context, log *einvoice.OperationLog)
}

// client is the REST implementation over the shared http client. It is
// constructed per process with explicit configuration; there is no package
// level instance.
type client struct {
	cfg      config.NilveraConfig
	http     httpclient.Client
	cache    cache.Cache
	recorder OperationRecorder
	logger   *logger.Logger
}

// NewClient creates a Nilvera API client
func NewClient(
	cfg config.NilveraConfig,
	http httpclient.Client,
	c cache.Cache,
	recorder OperationRecorder,
	logger *logger.Logger,
) Client {
	return &client{
		cfg:      cfg,
		http:     http,
		cache:    c,
		recorder: recorder,
		logger:   logger,
	}
}

func (c *client) SendEInvoice(ctx context.Context, req *InvoiceRequest) (*SendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Fatura belgesi oluşturulamadı").
			Mark(ierr.ErrSystem)
	}

	var resp SendResponse
	if err := c.do(ctx, OperationSendEInvoice, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.cfg.BaseURL() + "/einvoice/Send/Model",
		Body:   body,
	}, &resp); err != nil {
		return nil, err
	}

	if resp.InvoiceID == "" {
		return nil, ierr.NewError("provider send response missing invoice id").
			WithHint("Sağlayıcı yanıtı geçersiz").
			Mark(ierr.ErrProvider)
	}

	return &resp, nil
}

func (c *client) GetInvoiceStatus(ctx context.Context, providerInvoiceID string) (*StatusResponse, error) {
	if providerInvoiceID == "" {
		return nil, ierr.NewError("provider invoice id is required").
			WithHint("Fatura sağlayıcıya henüz gönderilmemiş").
			Mark(ierr.ErrValidation)
	}

	var resp StatusResponse
	if err := c.do(ctx, OperationCheckStatus, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/einvoice/Sale/%s/Status", c.cfg.BaseURL(), url.PathEscape(providerInvoiceID)),
	}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *client) CheckTaxNumber(ctx context.Context, taxNumber string) (*GlobalCompanyInfo, error) {
	if taxNumber == "" {
		return nil, ierr.NewError("tax number is required").
			WithHint("Vergi numarası boş olamaz").
			Mark(ierr.ErrValidation)
	}

	cacheKey := cache.GenerateKey(cache.PrefixEInvoiceAlias, taxNumber)
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		if info, ok := cached.(*GlobalCompanyInfo); ok {
			return info, nil
		}
	}

	var resp []GlobalCompanyInfo
	err := c.do(ctx, OperationCheckTaxNumber, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/general/GlobalCompany/Check/TaxNumber/%s", c.cfg.BaseURL(), url.PathEscape(taxNumber)),
	}, &resp)
	if err != nil {
		// A 404 from the directory means the taxpayer is simply not
		// registered, which is a valid answer rather than a failure.
		if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			c.cache.Set(ctx, cacheKey, (*GlobalCompanyInfo)(nil), aliasCacheTTL)
			return nil, nil
		}
		return nil, err
	}

	if len(resp) == 0 {
		c.cache.Set(ctx, cacheKey, (*GlobalCompanyInfo)(nil), aliasCacheTTL)
		return nil, nil
	}

	info := &resp[0]
	c.cache.Set(ctx, cacheKey, info, aliasCacheTTL)
	return info, nil
}

func (c *client) ListInvoices(ctx context.Context, page, pageSize int) (*ListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	var resp ListResponse
	if err := c.do(ctx, OperationListInvoices, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/einvoice/Sale?Page=%d&PageSize=%d", c.cfg.BaseURL(), page, pageSize),
	}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *client) DownloadPDF(ctx context.Context, providerInvoiceID string) ([]byte, error) {
	if providerInvoiceID == "" {
		return nil, ierr.NewError("provider invoice id is required").
			WithHint("Fatura sağlayıcıya henüz gönderilmemiş").
			Mark(ierr.ErrValidation)
	}

	started := time.Now()
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("%s/einvoice/Sale/%s/pdf", c.cfg.BaseURL(), url.PathEscape(providerInvoiceID)),
		Headers: c.headers(),
	})
	c.audit(ctx, OperationDownloadPDF, types.Metadata{"provider_invoice_id": providerInvoiceID}, nil, err, started)
	if err != nil {
		return nil, c.wrapProviderErr(err, "PDF indirilemedi")
	}

	return resp.Body, nil
}

// do executes a provider call, audits it, and decodes the JSON response into
// out when the call succeeds.
func (c *client) do(ctx context.Context, operation string, req *httpclient.Request, out interface{}) error {
	req.Headers = c.headers()

	var reqPayload types.Metadata
	if req.Body != nil {
		_ = json.Unmarshal(req.Body, &reqPayload)
	}

	started := time.Now()
	resp, err := c.http.Send(ctx, req)

	var respPayload types.Metadata
	if resp != nil && len(resp.Body) > 0 {
		_ = json.Unmarshal(resp.Body, &respPayload)
	}
	if httpErr, ok := httpclient.IsHTTPError(err); ok && len(httpErr.Response) > 0 {
		_ = json.Unmarshal(httpErr.Response, &respPayload)
	}
	c.audit(ctx, operation, reqPayload, respPayload, err, started)

	if err != nil {
		return c.wrapProviderErr(err, "Sağlayıcı isteği başarısız oldu")
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return ierr.WithError(err).
				WithHint("Sağlayıcı yanıtı çözümlenemedi").
				Mark(ierr.ErrProvider)
		}
	}

	return nil
}

func (c *client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"Accept":        "application/json",
	}
}

// wrapProviderErr converts transport failures into provider errors, keeping
// the provider's own message when one was returned.
func (c *client) wrapProviderErr(err error, hint string) error {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		var providerErr ErrorResponse
		if len(httpErr.Response) > 0 {
			_ = json.Unmarshal(httpErr.Response, &providerErr)
		}

		builder := ierr.WithError(err).WithHint(hint)
		details := map[string]any{
			"status_code": httpErr.StatusCode,
		}
		if providerErr.Message != "" {
			details["provider_message"] = providerErr.Message
			builder = builder.WithMessage(providerErr.Message)
		}
		if providerErr.Code != "" {
			details["provider_code"] = providerErr.Code
		}
		return builder.
			WithReportableDetails(details).
			Mark(ierr.ErrProvider)
	}

	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrProvider)
}

// audit records the provider call in the operation log
func (c *client) audit(ctx context.Context, operation string, reqPayload, respPayload types.Metadata, callErr error, started time.Time) {
	if c.recorder == nil {
		return
	}

	log := &einvoice.OperationLog{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EINVOICE_LOG),
		Operation:  operation,
		Request:    reqPayload,
		Response:   respPayload,
		Success:    callErr == nil,
		DurationMS: time.Since(started).Milliseconds(),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if callErr != nil {
		msg := callErr.Error()
		log.ErrorMessage = &msg
	}
	if invoiceID := InvoiceIDFromContext(ctx); invoiceID != "" {
		log.SalesInvoiceID = &invoiceID
	}

	c.recorder.Record(ctx, log)
}
