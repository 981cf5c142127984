package service

import (
	"context"
	"testing"
	"time"

	"github.com/emretit/paftamobile-sub005/internal/domain/company"
	"github.com/emretit/paftamobile-sub005/internal/domain/customer"
	"github.com/emretit/paftamobile-sub005/internal/domain/einvoice"
	"github.com/emretit/paftamobile-sub005/internal/domain/invoice"
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/emretit/paftamobile-sub005/internal/integration/nilvera"
	"github.com/emretit/paftamobile-sub005/internal/testutil"
	"github.com/emretit/paftamobile-sub005/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EInvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  EInvoiceService
	provider *testutil.MockNilveraClient
	params   ServiceParams
}

func TestEInvoiceService(t *testing.T) {
	suite.Run(t, new(EInvoiceServiceSuite))
}

func (s *EInvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.provider = testutil.NewMockNilveraClient()
	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		InvoiceRepo:   stores.InvoiceRepo,
		CustomerRepo:  stores.CustomerRepo,
		CompanyRepo:   stores.CompanyRepo,
		EInvoiceRepo:  stores.EInvoiceRepo,
		NilveraClient: s.provider,
	}
	s.service = NewEInvoiceService(s.params)
}

func (s *EInvoiceServiceSuite) setupCompany() *company.Company {
	comp := &company.Company{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPANY),
		Name:      "Pafta Yazilim A.S.",
		TaxNumber: "1234567890",
		TaxOffice: "Maslak",
		City:      "Istanbul",
		Country:   "Türkiye",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CompanyRepo.Create(s.GetContext(), comp))
	return comp
}

func (s *EInvoiceServiceSuite) setupCustomer(mukellef bool, alias *string) *customer.Customer {
	cust := &customer.Customer{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:               "Acme Ticaret Ltd.",
		TaxNumber:          "9876543210",
		TaxOffice:          "Kadikoy",
		City:               "Istanbul",
		Country:            "Türkiye",
		IsEInvoiceMukellef: mukellef,
		EInvoiceAlias:      alias,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	if alias != nil {
		now := time.Now().UTC()
		cust.AliasCheckedAt = &now
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

// setupInvoice creates an invoice with two lines, 100 TRY at 18% VAT and
// 50 TRY at 8% VAT, with header totals consistent with the lines.
func (s *EInvoiceServiceSuite) setupInvoice(customerID string) *invoice.SalesInvoice {
	ctx := s.GetContext()
	inv := &invoice.SalesInvoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_INVOICE),
		InvoiceNumber:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_SALES_INVOICE),
		CustomerID:     customerID,
		IssueDate:      time.Now().UTC(),
		Currency:       "TRY",
		InvoiceStatus:  types.SalesInvoiceStatusTaslak,
		SubtotalAmount: decimal.NewFromInt(150),
		TaxAmount:      decimal.NewFromInt(22),
		TotalAmount:    decimal.NewFromInt(172),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	lines := []*invoice.LineItem{
		{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_INVOICE_LINE),
			InvoiceID:   inv.ID,
			Name:        "Danismanlik hizmeti",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(100),
			TaxRate:     decimal.NewFromInt(18),
			TotalAmount: decimal.NewFromInt(100),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
		{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_INVOICE_LINE),
			InvoiceID:   inv.ID,
			Name:        "Egitim hizmeti",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(50),
			TaxRate:     decimal.NewFromInt(8),
			TotalAmount: decimal.NewFromInt(50),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		},
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(ctx, inv))
	s.NoError(s.GetStores().InvoiceRepo.CreateLineItems(ctx, inv.ID, lines))
	return inv
}

func (s *EInvoiceServiceSuite) TestSendInvoiceBasicProfile() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.True(ok)

	// Non-taxpayer recipients get the basic profile with no routing alias
	req := s.provider.LastSentRequest()
	s.NotNil(req)
	s.Empty(req.CustomerAlias)
	s.Equal("TEMELFATURA", req.EInvoice.InvoiceInfo.InvoiceProfile)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusSent, tracking.EInvoiceStatus)
	s.NotNil(tracking.SentAt)
	s.NotNil(tracking.ProviderInvoiceID)
	s.Equal("mock-invoice-id", *tracking.ProviderInvoiceID)

	got, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.SalesInvoiceStatusGonderildi, got.InvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestSendInvoiceCommercialProfile() {
	s.setupCompany()
	cust := s.setupCustomer(true, nil)
	inv := s.setupInvoice(cust.ID)

	s.provider.CheckFunc = func(ctx context.Context, taxNumber string) (*nilvera.GlobalCompanyInfo, error) {
		return &nilvera.GlobalCompanyInfo{
			TaxNumber: taxNumber,
			Aliases:   []nilvera.Alias{{Name: "urn:mail:defaultpk@acme.com.tr"}},
		}, nil
	}

	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.True(ok)

	req := s.provider.LastSentRequest()
	s.Equal("urn:mail:defaultpk@acme.com.tr", req.CustomerAlias)
	s.Equal("TICARIFATURA", req.EInvoice.InvoiceInfo.InvoiceProfile)

	// The freshly resolved alias is persisted on the customer
	got, err := s.GetStores().CustomerRepo.Get(s.GetContext(), cust.ID)
	s.NoError(err)
	s.NotNil(got.EInvoiceAlias)
	s.Equal("urn:mail:defaultpk@acme.com.tr", *got.EInvoiceAlias)
}

func (s *EInvoiceServiceSuite) TestSendInvoiceTaxpayerWithoutAlias() {
	s.setupCompany()
	cust := s.setupCustomer(true, nil)
	inv := s.setupInvoice(cust.ID)

	// The directory lookup finds nothing. A registered taxpayer without an
	// alias must fail hard instead of being downgraded to the basic profile.
	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.False(ok)
	s.Empty(s.provider.SentRequests)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusError, tracking.EInvoiceStatus)
	s.NotNil(tracking.ErrorMessage)

	got, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.SalesInvoiceStatusTaslak, got.InvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestSendInvoiceLineTaxRates() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.True(ok)

	req := s.provider.LastSentRequest()
	s.Len(req.EInvoice.InvoiceLines, 2)
	s.True(req.EInvoice.InvoiceLines[0].KDVPercent.Equal(decimal.NewFromInt(18)))
	s.True(req.EInvoice.InvoiceLines[1].KDVPercent.Equal(decimal.NewFromInt(8)))
	s.Equal("TRY", req.EInvoice.InvoiceInfo.CurrencyCode)
}

func (s *EInvoiceServiceSuite) TestSendInvoiceProviderFailure() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	s.provider.SendFunc = func(ctx context.Context, req *nilvera.InvoiceRequest) (*nilvera.SendResponse, error) {
		return nil, ierr.NewError("provider rejected the document").
			WithHint("Fatura sağlayıcı tarafından reddedildi").
			Mark(ierr.ErrProvider)
	}

	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.False(ok)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusError, tracking.EInvoiceStatus)
	s.NotNil(tracking.ErrorMessage)

	// The parent invoice is left untouched on a failed send
	got, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.SalesInvoiceStatusTaslak, got.InvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestDoubleSendSingleTrackingRow() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))
	s.True(s.service.ResendInvoice(s.GetContext(), inv.ID))

	s.Len(s.provider.SentRequests, 2)

	rows, err := s.GetStores().EInvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(rows, 1)
	s.Equal(types.EInvoiceStatusSent, rows[0].EInvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestSendInvoiceTotalsDrift() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	// Drift the header away from the line totals
	inv.SubtotalAmount = decimal.NewFromInt(999)
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	ok := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.False(ok)
	s.Empty(s.provider.SentRequests)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusError, tracking.EInvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusDelivered() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeNone,
		}, nil
	}

	resp, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusDelivered, resp.EInvoiceStatus)
	s.NotNil(resp.DeliveredAt)
	s.Equal(types.NilveraInvoiceStateDelivered, *resp.InvoiceState)
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusRejected() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeRejected,
			AnswerCode:   "RED-001",
		}, nil
	}

	resp, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusRejected, resp.EInvoiceStatus)
	s.NotNil(resp.RespondedAt)
	s.Equal("RED-001", *resp.AnswerCode)
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusAccepted() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeAccepted,
		}, nil
	}

	resp, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusAccepted, resp.EInvoiceStatus)
	s.NotNil(resp.RespondedAt)
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusBeforeSend() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	tracking := einvoice.NewStatusTracking(s.GetContext(), inv.ID)
	tracking.Version = 1
	s.NoError(s.GetStores().EInvoiceRepo.Upsert(s.GetContext(), tracking))

	_, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusIgnoresRegression() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeAccepted,
		}, nil
	}
	resp, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusAccepted, resp.EInvoiceStatus)

	// A later poll reporting only delivery must not move an accepted
	// document backwards
	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeNone,
		}, nil
	}
	resp, err = s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusAccepted, resp.EInvoiceStatus)
}

func (s *EInvoiceServiceSuite) TestCheckInvoiceStatusRecoversAfterPollFailure() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	// A transient provider outage pushes the row into error
	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return nil, ierr.NewError("provider unavailable").Mark(ierr.ErrProvider)
	}
	_, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.Error(err)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusError, tracking.EInvoiceStatus)
	s.NotNil(tracking.ErrorMessage)

	// The next successful poll must pull the row out of error and land on
	// what the provider actually reports
	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
			AnswerType:   types.NilveraAnswerTypeAccepted,
		}, nil
	}
	resp, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusAccepted, resp.EInvoiceStatus)
	s.NotNil(resp.RespondedAt)
	s.Nil(resp.ErrorMessage)
}

func (s *EInvoiceServiceSuite) TestRefreshPendingRetriesFailedPolls() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return nil, ierr.NewError("provider unavailable").Mark(ierr.ErrProvider)
	}
	_, err := s.service.CheckInvoiceStatus(s.GetContext(), inv.ID)
	s.Error(err)

	// The errored row still has a provider invoice id, so the bulk refresh
	// picks it up once the provider answers again
	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
		}, nil
	}
	resp, err := s.service.RefreshPendingStatuses(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Checked)
	s.Equal(1, resp.Updated)

	tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.EInvoiceStatusDelivered, tracking.EInvoiceStatus)
	s.Nil(tracking.ErrorMessage)
}

func (s *EInvoiceServiceSuite) TestUpsertVersionConflict() {
	ctx := s.GetContext()
	tracking := einvoice.NewStatusTracking(ctx, "inv_x")
	tracking.Version = 1
	s.NoError(s.GetStores().EInvoiceRepo.Upsert(ctx, tracking))

	// A second writer that read the same version loses
	stale := einvoice.NewStatusTracking(ctx, "inv_x")
	stale.Version = 1
	err := s.GetStores().EInvoiceRepo.Upsert(ctx, stale)
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *EInvoiceServiceSuite) TestRefreshPendingStatuses() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		inv := s.setupInvoice(cust.ID)
		s.True(s.service.SendInvoice(s.GetContext(), inv.ID))
		ids = append(ids, inv.ID)
	}

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return &nilvera.StatusResponse{
			InvoiceState: types.NilveraInvoiceStateDelivered,
		}, nil
	}

	resp, err := s.service.RefreshPendingStatuses(s.GetContext())
	s.NoError(err)
	s.Equal(3, resp.Checked)
	s.Equal(3, resp.Updated)
	s.Equal(0, resp.Failed)

	for _, id := range ids {
		tracking, err := s.GetStores().EInvoiceRepo.GetByInvoiceID(s.GetContext(), id)
		s.NoError(err)
		s.Equal(types.EInvoiceStatusDelivered, tracking.EInvoiceStatus)
	}
}

func (s *EInvoiceServiceSuite) TestRefreshPendingCountsFailures() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	s.provider.StatusFunc = func(ctx context.Context, providerInvoiceID string) (*nilvera.StatusResponse, error) {
		return nil, ierr.NewError("provider unavailable").Mark(ierr.ErrProvider)
	}

	resp, err := s.service.RefreshPendingStatuses(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Checked)
	s.Equal(0, resp.Updated)
	s.Equal(1, resp.Failed)
}

func (s *EInvoiceServiceSuite) TestListProviderInvoices() {
	s.provider.ListFunc = func(ctx context.Context, page, pageSize int) (*nilvera.ListResponse, error) {
		s.Equal(2, page)
		s.Equal(25, pageSize)
		return &nilvera.ListResponse{
			Content: []nilvera.ListedInvoice{
				{
					UUID:                 "uuid-1",
					InvoiceSerieOrNumber: "PFT2026000000042",
					InvoiceState:         2,
					AnswerType:           1,
					IssueDate:            "2026-08-30",
				},
			},
			TotalCount: 51,
			Page:       2,
			PageSize:   25,
		}, nil
	}

	resp, err := s.service.ListProviderInvoices(s.GetContext(), 2, 25)
	s.NoError(err)
	s.Equal(51, resp.TotalCount)
	s.Equal(2, resp.Page)
	s.Equal(25, resp.PageSize)
	s.Len(resp.Items, 1)
	s.Equal("uuid-1", resp.Items[0].UUID)
	s.Equal("PFT2026000000042", resp.Items[0].InvoiceNumber)
	s.Equal(2, resp.Items[0].InvoiceState)
	s.Equal(1, resp.Items[0].AnswerType)
	s.Equal("2026-08-30", resp.Items[0].IssueDate)
}

func (s *EInvoiceServiceSuite) TestResolveAliasPrefersConfirmedCache() {
	cached := "urn:mail:cached@acme.com.tr"
	cust := s.setupCustomer(true, &cached)

	s.provider.CheckFunc = func(ctx context.Context, taxNumber string) (*nilvera.GlobalCompanyInfo, error) {
		return &nilvera.GlobalCompanyInfo{
			TaxNumber: taxNumber,
			Aliases: []nilvera.Alias{
				{Name: "urn:mail:first@acme.com.tr"},
				{Name: cached},
			},
		}, nil
	}

	alias, err := s.service.ResolveAlias(s.GetContext(), cust)
	s.NoError(err)
	s.Equal(cached, alias)
}

func (s *EInvoiceServiceSuite) TestResolveAliasStaleCacheReplaced() {
	cached := "urn:mail:gone@acme.com.tr"
	cust := s.setupCustomer(true, &cached)

	s.provider.CheckFunc = func(ctx context.Context, taxNumber string) (*nilvera.GlobalCompanyInfo, error) {
		return &nilvera.GlobalCompanyInfo{
			TaxNumber: taxNumber,
			Aliases:   []nilvera.Alias{{Name: "urn:mail:new@acme.com.tr"}},
		}, nil
	}

	alias, err := s.service.ResolveAlias(s.GetContext(), cust)
	s.NoError(err)
	s.Equal("urn:mail:new@acme.com.tr", alias)
}

func (s *EInvoiceServiceSuite) TestGetLogsAfterSend() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)
	s.True(s.service.SendInvoice(s.GetContext(), inv.ID))

	logEntry := &einvoice.OperationLog{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EINVOICE_LOG),
		SalesInvoiceID: &inv.ID,
		Operation:      "send_einvoice",
		Success:        true,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().EInvoiceRepo.CreateLog(s.GetContext(), logEntry))

	resp, err := s.service.GetLogs(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("send_einvoice", resp.Items[0].Operation)
}

func (s *EInvoiceServiceSuite) TestDownloadPDFRequiresProviderID() {
	s.setupCompany()
	cust := s.setupCustomer(false, nil)
	inv := s.setupInvoice(cust.ID)

	tracking := einvoice.NewStatusTracking(s.GetContext(), inv.ID)
	tracking.Version = 1
	s.NoError(s.GetStores().EInvoiceRepo.Upsert(s.GetContext(), tracking))

	_, err := s.service.DownloadInvoicePDF(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
