package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
)

// InMemoryEInvoiceStore implements einvoice.Repository with the same version
// guard semantics as the postgres upsert.
type InMemoryEInvoiceStore struct {
	mu       sync.RWMutex
	tracking map[string]*einvoice.StatusTracking
	logs     []*einvoice.OperationLog
}

func NewInMemoryEInvoiceStore() *InMemoryEInvoiceStore {
	return &InMemoryEInvoiceStore{
		tracking: make(map[string]*einvoice.StatusTracking),
	}
}

func copyStrPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyIntPtr(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyTracking(t *einvoice.StatusTracking) *einvoice.StatusTracking {
	if t == nil {
		return nil
	}

	cp := *t
	cp.ProviderInvoiceID = copyStrPtr(t.ProviderInvoiceID)
	cp.TransferID = copyStrPtr(t.TransferID)
	cp.InvoiceState = copyIntPtr(t.InvoiceState)
	cp.AnswerType = copyIntPtr(t.AnswerType)
	cp.AnswerCode = copyStrPtr(t.AnswerCode)
	cp.SentAt = copyTimePtr(t.SentAt)
	cp.DeliveredAt = copyTimePtr(t.DeliveredAt)
	cp.RespondedAt = copyTimePtr(t.RespondedAt)
	cp.ErrorMessage = copyStrPtr(t.ErrorMessage)
	cp.ErrorCode = copyStrPtr(t.ErrorCode)
	if t.LastResponse != nil {
		cp.LastResponse = make(types.Metadata, len(t.LastResponse))
		for k, v := range t.LastResponse {
			cp.LastResponse[k] = v
		}
	}
	return &cp
}

func trackingKey(tenantID, salesInvoiceID string) string {
	return tenantID + "/" + salesInvoiceID
}

func (s *InMemoryEInvoiceStore) Upsert(ctx context.Context, tracking *einvoice.StatusTracking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := trackingKey(tracking.TenantID, tracking.SalesInvoiceID)
	stored, exists := s.tracking[key]

	expected := 1
	if exists {
		expected = stored.Version + 1
	}
	if tracking.Version != expected {
		return ierr.NewError("stale e-invoice tracking write").
			WithHint("Takip kaydı başka bir işlem tarafından güncellendi, yeniden deneyin").
			WithReportableDetails(map[string]any{
				"sales_invoice_id": tracking.SalesInvoiceID,
				"version":          tracking.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	tracking.UpdatedAt = time.Now().UTC()
	s.tracking[key] = copyTracking(tracking)
	return nil
}

func (s *InMemoryEInvoiceStore) GetByInvoiceID(ctx context.Context, salesInvoiceID string) (*einvoice.StatusTracking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracking, exists := s.tracking[trackingKey(types.GetTenantID(ctx), salesInvoiceID)]
	if !exists {
		return nil, ierr.NewError("tracking not found").
			WithHintf("No e-invoice tracking for invoice %s", salesInvoiceID).
			Mark(ierr.ErrNotFound)
	}
	return copyTracking(tracking), nil
}

func (s *InMemoryEInvoiceStore) List(ctx context.Context, filter *types.EInvoiceTrackingFilter) ([]*einvoice.StatusTracking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*einvoice.StatusTracking
	for _, t := range s.tracking {
		if t.TenantID != types.GetTenantID(ctx) {
			continue
		}
		if filter != nil && len(filter.Statuses) > 0 {
			found := false
			for _, st := range filter.Statuses {
				if t.EInvoiceStatus == st {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, copyTracking(t))
	}
	return result, nil
}

func (s *InMemoryEInvoiceStore) ListPending(ctx context.Context, updatedBefore time.Time, limit int) ([]*einvoice.StatusTracking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := map[types.EInvoiceStatus]bool{
		types.EInvoiceStatusSending:   true,
		types.EInvoiceStatusSent:      true,
		types.EInvoiceStatusDelivered: true,
	}

	var result []*einvoice.StatusTracking
	for _, t := range s.tracking {
		if t.TenantID != types.GetTenantID(ctx) {
			continue
		}
		retriableError := t.EInvoiceStatus == types.EInvoiceStatusError && t.ProviderInvoiceID != nil
		if (!pending[t.EInvoiceStatus] && !retriableError) || !t.UpdatedAt.Before(updatedBefore) {
			continue
		}
		result = append(result, copyTracking(t))
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *InMemoryEInvoiceStore) CreateLog(ctx context.Context, log *einvoice.OperationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *log
	s.logs = append(s.logs, &cp)
	return nil
}

func (s *InMemoryEInvoiceStore) ListLogs(ctx context.Context, salesInvoiceID string) ([]*einvoice.OperationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*einvoice.OperationLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		log := s.logs[i]
		if log.SalesInvoiceID != nil && *log.SalesInvoiceID == salesInvoiceID &&
			log.TenantID == types.GetTenantID(ctx) {
			cp := *log
			result = append(result, &cp)
		}
	}
	return result, nil
}
