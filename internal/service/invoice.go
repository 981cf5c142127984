package service

import (
	"context"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/samber/lo"
)

// InvoiceService manages sales invoices
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.SalesInvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.SalesInvoiceResponse, error)
	GetInvoices(ctx context.Context, filter *types.SalesInvoiceFilter) (*dto.ListInvoicesResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.SalesInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The customer must exist before an invoice can reference it
	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	inv := req.ToSalesInvoice(ctx)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.InvoiceRepo.Create(txCtx, inv); err != nil {
			return err
		}
		return s.InvoiceRepo.CreateLineItems(txCtx, inv.ID, inv.LineItems)
	}); err != nil {
		return nil, err
	}

	return &dto.SalesInvoiceResponse{SalesInvoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.SalesInvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SalesInvoiceResponse{SalesInvoice: inv}, nil
}

func (s *invoiceService) GetInvoices(ctx context.Context, filter *types.SalesInvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.SalesInvoiceFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(invoices, func(inv *invoice.SalesInvoice, _ int) *dto.SalesInvoiceResponse {
		return &dto.SalesInvoiceResponse{SalesInvoice: inv}
	})

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	// A submitted invoice is a legal document and cannot be removed
	if inv.IsSent() {
		return ierr.NewError("sent invoices cannot be deleted").
			WithHint("Gönderilmiş fatura silinemez").
			Mark(ierr.ErrInvalidOperation)
	}

	return s.InvoiceRepo.Delete(ctx, id)
}
