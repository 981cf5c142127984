package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// refreshBatchSize caps how many pending rows a single bulk refresh touches
const refreshBatchSize = 100

// refreshWorkers bounds the provider call concurrency during a bulk refresh
const refreshWorkers = 5

// EInvoiceService orchestrates the send/track/reconcile lifecycle of
// e-invoice documents.
type EInvoiceService interface {
	// SendInvoice submits the sales invoice to the provider. It never
	// returns an error: any failure is recorded on the tracking row as an
	// error status and reported as false. Callers must check the boolean.
	SendInvoice(ctx context.Context, invoiceID string) bool

	// ResendInvoice is an alias of SendInvoice. There is no deduplication
	// against a prior send; resending an already delivered document creates
	// a second provider-side document.
	ResendInvoice(ctx context.Context, invoiceID string) bool

	// CheckInvoiceStatus polls the provider and applies the resulting
	// lifecycle transition to the tracking row.
	CheckInvoiceStatus(ctx context.Context, invoiceID string) (*dto.EInvoiceTrackingResponse, error)

	// RefreshPendingStatuses reconciles all unresolved tracking rows against
	// the provider in a single bounded-concurrency pass.
	RefreshPendingStatuses(ctx context.Context) (*dto.RefreshPendingResponse, error)

	// ListProviderInvoices returns a page of outgoing documents as the
	// provider sees them
	ListProviderInvoices(ctx context.Context, page, pageSize int) (*dto.ListProviderInvoicesResponse, error)

	// GetTracking returns the tracking row for a sales invoice
	GetTracking(ctx context.Context, invoiceID string) (*dto.EInvoiceTrackingResponse, error)

	// GetLogs returns the provider call audit trail for a sales invoice
	GetLogs(ctx context.Context, invoiceID string) (*dto.ListEInvoiceLogsResponse, error)

	// DownloadInvoicePDF fetches the rendered document from the provider
	DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error)

	// BuildEInvoiceDocument transforms a loaded invoice, its customer and
	// the issuing company into the provider wire schema.
	BuildEInvoiceDocument(ctx context.Context, inv *invoice.SalesInvoice, cust *customer.Customer, comp *company.Company) (*nilvera.InvoiceRequest, error)

	// ResolveAlias confirms the customer's directory alias against the
	// provider. It is a pure read: persisting a refreshed alias is a
	// separate explicit step taken by the caller.
	ResolveAlias(ctx context.Context, cust *customer.Customer) (string, error)
}

type einvoiceService struct {
	ServiceParams
}

func NewEInvoiceService(params ServiceParams) EInvoiceService {
	return &einvoiceService{ServiceParams: params}
}

func (s *einvoiceService) SendInvoice(ctx context.Context, invoiceID string) bool {
	ctx = nilvera.WithInvoiceID(ctx, invoiceID)
	now := time.Now().UTC()

	tracking, err := s.EInvoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			s.Logger.Errorw("failed to load e-invoice tracking", "invoice_id", invoiceID, "error", err)
			return false
		}
		tracking = einvoice.NewStatusTracking(ctx, invoiceID)
	}

	if err := tracking.TransitionTo(types.EInvoiceStatusSending, now); err != nil {
		s.Logger.Warnw("invoice is not in a sendable state",
			"invoice_id", invoiceID,
			"status", tracking.EInvoiceStatus,
		)
		return false
	}
	tracking.ClearError()
	tracking.Version++
	if err := s.EInvoiceRepo.Upsert(ctx, tracking); err != nil {
		s.Logger.Errorw("failed to persist sending state", "invoice_id", invoiceID, "error", err)
		return false
	}

	resp, sendErr := s.send(ctx, invoiceID, tracking)
	if sendErr != nil {
		s.failTracking(ctx, tracking, sendErr, now)
		return false
	}

	tracking.ProviderInvoiceID = &resp.InvoiceID
	if resp.TransferID != "" {
		tracking.TransferID = &resp.TransferID
	}
	tracking.LastResponse = types.Metadata{
		"id":         resp.InvoiceID,
		"uuid":       resp.UUID,
		"transferId": resp.TransferID,
	}
	if err := tracking.TransitionTo(types.EInvoiceStatusSent, time.Now().UTC()); err != nil {
		s.failTracking(ctx, tracking, err, now)
		return false
	}
	tracking.Version++
	if err := s.EInvoiceRepo.Upsert(ctx, tracking); err != nil {
		s.Logger.Errorw("failed to persist sent state", "invoice_id", invoiceID, "error", err)
		return false
	}

	if err := s.InvoiceRepo.UpdateStatus(ctx, invoiceID, types.SalesInvoiceStatusGonderildi); err != nil {
		// The document is already with the provider; surface the mismatch in
		// the logs rather than failing the whole send.
		s.Logger.Errorw("failed to update parent invoice status",
			"invoice_id", invoiceID,
			"error", err,
		)
	}

	s.Logger.Infow("e-invoice sent",
		"invoice_id", invoiceID,
		"provider_invoice_id", resp.InvoiceID,
	)
	return true
}

func (s *einvoiceService) ResendInvoice(ctx context.Context, invoiceID string) bool {
	return s.SendInvoice(ctx, invoiceID)
}

// send loads the full invoice context, builds the wire document and submits
// it. The parent invoice status is intentionally left untouched on failure.
func (s *einvoiceService) send(ctx context.Context, invoiceID string, tracking *einvoice.StatusTracking) (*nilvera.SendResponse, error) {
	inv, err := s.InvoiceRepo.GetWithLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}

	comp, err := s.CompanyRepo.GetByTenant(ctx)
	if err != nil {
		return nil, err
	}

	req, err := s.BuildEInvoiceDocument(ctx, inv, cust, comp)
	if err != nil {
		return nil, err
	}

	// Persist a refreshed alias as an explicit write step, separate from the
	// read-only resolution that happened during document building.
	if req.CustomerAlias != "" && (cust.EInvoiceAlias == nil || *cust.EInvoiceAlias != req.CustomerAlias) {
		if err := s.CustomerRepo.UpdateEInvoiceAlias(ctx, cust.ID, lo.ToPtr(req.CustomerAlias)); err != nil {
			s.Logger.Errorw("failed to refresh customer alias cache",
				"customer_id", cust.ID,
				"error", err,
			)
		}
	}

	return s.NilveraClient.SendEInvoice(ctx, req)
}

func (s *einvoiceService) BuildEInvoiceDocument(ctx context.Context, inv *invoice.SalesInvoice, cust *customer.Customer, comp *company.Company) (*nilvera.InvoiceRequest, error) {
	if comp.TaxNumber == "" {
		return nil, ierr.NewError("company tax number is missing").
			WithHint("Şirket vergi numarası tanımlı değil").
			Mark(ierr.ErrValidation)
	}
	if cust.TaxNumber == "" {
		return nil, ierr.NewError("customer tax number is missing").
			WithHint("Müşteri vergi numarası tanımlı değil").
			Mark(ierr.ErrValidation)
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if len(inv.LineItems) == 0 {
		return nil, ierr.NewError("invoice has no line items").
			WithHint("Fatura satırı olmadan gönderim yapılamaz").
			Mark(ierr.ErrValidation)
	}

	profile := types.InvoiceProfileTemel
	alias := ""
	if cust.IsEInvoiceMukellef {
		resolved, err := s.ResolveAlias(ctx, cust)
		if err != nil {
			return nil, err
		}
		// A registered taxpayer without a routable alias is a hard failure:
		// silently downgrading to TEMELFATURA would misroute a legally
		// distinct document type.
		if resolved == "" {
			return nil, ierr.NewError("no e-invoice alias found for taxpayer").
				WithHint("Mükellef için geçerli bir e-fatura etiketi bulunamadı").
				WithReportableDetails(map[string]any{
					"customer_id": cust.ID,
					"tax_number":  cust.TaxNumber,
				}).
				Mark(ierr.ErrValidation)
		}
		profile = types.InvoiceProfileTicari
		alias = resolved
	}

	lines := lo.Map(inv.LineItems, func(li *invoice.LineItem, _ int) nilvera.InvoiceLine {
		return nilvera.InvoiceLine{
			Name:            li.Name,
			Quantity:        li.Quantity,
			UnitType:        "C62",
			Price:           li.UnitPrice,
			KDVPercent:      li.TaxRate,
			DiscountPercent: li.DiscountRate,
			Total:           li.TotalAmount,
		}
	})

	doc := nilvera.EInvoiceDocument{
		InvoiceInfo: nilvera.InvoiceInfo{
			UUID:                 inv.ID,
			InvoiceSerieOrNumber: inv.InvoiceNumber,
			IssueDate:            inv.IssueDate.Format("2006-01-02"),
			InvoiceType:          "SATIS",
			InvoiceProfile:       profile.String(),
			CurrencyCode:         inv.Currency,
		},
		CompanyInfo: nilvera.PartyInfo{
			TaxNumber:  comp.TaxNumber,
			Name:       comp.Name,
			TaxOffice:  comp.TaxOffice,
			Address:    comp.AddressLine,
			District:   comp.District,
			City:       comp.City,
			Country:    comp.Country,
			PostalCode: comp.PostalCode,
			Phone:      comp.Phone,
			Mail:       comp.Email,
		},
		CustomerInfo: nilvera.PartyInfo{
			TaxNumber:  cust.TaxNumber,
			Name:       cust.Name,
			TaxOffice:  cust.TaxOffice,
			Address:    cust.AddressLine,
			District:   cust.District,
			City:       cust.City,
			Country:    cust.Country,
			PostalCode: cust.PostalCode,
			Phone:      cust.Phone,
			Mail:       cust.Email,
		},
		InvoiceLines: lines,
	}
	if inv.Notes != "" {
		doc.Notes = []string{inv.Notes}
	}

	return &nilvera.InvoiceRequest{
		EInvoice:      doc,
		CustomerAlias: alias,
	}, nil
}

func (s *einvoiceService) ResolveAlias(ctx context.Context, cust *customer.Customer) (string, error) {
	info, err := s.NilveraClient.CheckTaxNumber(ctx, cust.TaxNumber)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", nil
	}

	// A cached alias that is still registered stays authoritative; otherwise
	// the directory's first alias wins and the stale cache is ignored.
	if cust.HasValidAlias() && info.HasAlias(*cust.EInvoiceAlias) {
		return *cust.EInvoiceAlias, nil
	}
	return info.FirstAlias(), nil
}

func (s *einvoiceService) CheckInvoiceStatus(ctx context.Context, invoiceID string) (*dto.EInvoiceTrackingResponse, error) {
	ctx = nilvera.WithInvoiceID(ctx, invoiceID)

	tracking, err := s.EInvoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if tracking.ProviderInvoiceID == nil {
		return nil, ierr.NewError("invoice has not been sent to the provider").
			WithHint("Fatura sağlayıcıya henüz gönderilmemiş").
			Mark(ierr.ErrInvalidOperation)
	}

	status, err := s.NilveraClient.GetInvoiceStatus(ctx, *tracking.ProviderInvoiceID)
	if err != nil {
		now := time.Now().UTC()
		s.failTracking(ctx, tracking, err, now)
		return nil, err
	}

	if err := s.applyStatus(ctx, tracking, status); err != nil {
		return nil, err
	}

	return &dto.EInvoiceTrackingResponse{StatusTracking: tracking}, nil
}

// applyStatus records the provider's raw codes and applies the mapped
// lifecycle transition when it is legal from the current state.
func (s *einvoiceService) applyStatus(ctx context.Context, tracking *einvoice.StatusTracking, status *nilvera.StatusResponse) error {
	now := time.Now().UTC()

	tracking.InvoiceState = &status.InvoiceState
	tracking.AnswerType = &status.AnswerType
	if status.AnswerCode != "" {
		tracking.AnswerCode = &status.AnswerCode
	}
	if status.TransferID != "" {
		tracking.TransferID = &status.TransferID
	}
	tracking.LastResponse = types.Metadata{
		"UUID":         status.UUID,
		"InvoiceState": status.InvoiceState,
		"AnswerType":   status.AnswerType,
		"AnswerCode":   status.AnswerCode,
		"StatusDetail": status.StatusDetail,
	}

	target := types.EInvoiceStatusFromProviderCodes(status.InvoiceState, status.AnswerType)
	if target == types.EInvoiceStatusError {
		detail := status.StatusDetail
		if detail == "" {
			detail = "provider reported a failed delivery"
		}
		tracking.MarkError(detail, nil, now)
	} else if target != tracking.EInvoiceStatus {
		if tracking.EInvoiceStatus.CanTransition(target) {
			wasError := tracking.EInvoiceStatus == types.EInvoiceStatusError
			if err := tracking.TransitionTo(target, now); err != nil {
				return err
			}
			if wasError {
				tracking.ClearError()
			}
		} else {
			s.Logger.Warnw("ignoring out-of-order provider status",
				"invoice_id", tracking.SalesInvoiceID,
				"current", tracking.EInvoiceStatus,
				"reported", target,
			)
		}
	}

	tracking.Version++
	return s.EInvoiceRepo.Upsert(ctx, tracking)
}

func (s *einvoiceService) RefreshPendingStatuses(ctx context.Context) (*dto.RefreshPendingResponse, error) {
	pending, err := s.EInvoiceRepo.ListPending(ctx, time.Now().UTC(), refreshBatchSize)
	if err != nil {
		return nil, err
	}

	var updated, failed atomic.Int64
	p := pool.New().WithMaxGoroutines(refreshWorkers)
	for _, tracking := range pending {
		tracking := tracking
		p.Go(func() {
			if tracking.ProviderInvoiceID == nil {
				return
			}
			callCtx := nilvera.WithInvoiceID(ctx, tracking.SalesInvoiceID)
			status, err := s.NilveraClient.GetInvoiceStatus(callCtx, *tracking.ProviderInvoiceID)
			if err != nil {
				failed.Add(1)
				s.Logger.Warnw("bulk refresh: status poll failed",
					"invoice_id", tracking.SalesInvoiceID,
					"error", err,
				)
				return
			}
			if err := s.applyStatus(callCtx, tracking, status); err != nil {
				failed.Add(1)
				return
			}
			updated.Add(1)
		})
	}
	p.Wait()

	return &dto.RefreshPendingResponse{
		Checked: len(pending),
		Updated: int(updated.Load()),
		Failed:  int(failed.Load()),
	}, nil
}

func (s *einvoiceService) ListProviderInvoices(ctx context.Context, page, pageSize int) (*dto.ListProviderInvoicesResponse, error) {
	resp, err := s.NilveraClient.ListInvoices(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := lo.Map(resp.Content, func(inv nilvera.ListedInvoice, _ int) *dto.ProviderInvoiceResponse {
		return &dto.ProviderInvoiceResponse{
			UUID:          inv.UUID,
			InvoiceNumber: inv.InvoiceSerieOrNumber,
			InvoiceState:  inv.InvoiceState,
			AnswerType:    inv.AnswerType,
			IssueDate:     inv.IssueDate,
		}
	})

	return &dto.ListProviderInvoicesResponse{
		Items:      items,
		TotalCount: resp.TotalCount,
		Page:       resp.Page,
		PageSize:   resp.PageSize,
	}, nil
}

func (s *einvoiceService) GetTracking(ctx context.Context, invoiceID string) (*dto.EInvoiceTrackingResponse, error) {
	tracking, err := s.EInvoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &dto.EInvoiceTrackingResponse{StatusTracking: tracking}, nil
}

func (s *einvoiceService) GetLogs(ctx context.Context, invoiceID string) (*dto.ListEInvoiceLogsResponse, error) {
	logs, err := s.EInvoiceRepo.ListLogs(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(logs, func(l *einvoice.OperationLog, _ int) *dto.EInvoiceLogResponse {
		return &dto.EInvoiceLogResponse{OperationLog: l}
	})
	return &dto.ListEInvoiceLogsResponse{Items: items}, nil
}

func (s *einvoiceService) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	ctx = nilvera.WithInvoiceID(ctx, invoiceID)

	tracking, err := s.EInvoiceRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if tracking.ProviderInvoiceID == nil {
		return nil, ierr.NewError("invoice has not been sent to the provider").
			WithHint("Fatura sağlayıcıya henüz gönderilmemiş").
			Mark(ierr.ErrInvalidOperation)
	}

	return s.NilveraClient.DownloadPDF(ctx, *tracking.ProviderInvoiceID)
}

// failTracking moves the tracking row into the error state with the failure
// detail. Persistence errors here are logged and swallowed: the caller is
// already on a failure path and the parent invoice is left untouched.
func (s *einvoiceService) failTracking(ctx context.Context, tracking *einvoice.StatusTracking, cause error, now time.Time) {
	var code *string
	var internalErr *ierr.InternalError
	if ierr.As(cause, &internalErr) && internalErr.Code != "" {
		code = lo.ToPtr(internalErr.Code)
	}

	tracking.MarkError(cause.Error(), code, now)
	tracking.Version++
	if err := s.EInvoiceRepo.Upsert(ctx, tracking); err != nil {
		s.Logger.Errorw("failed to persist error state",
			"invoice_id", tracking.SalesInvoiceID,
			"error", err,
		)
	}

	s.Logger.Errorw("e-invoice operation failed",
		"invoice_id", tracking.SalesInvoiceID,
		"error", cause,
	)
}
