package types

import (
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/samber/lo"
)

// SalesInvoiceStatus represents the lifecycle state of a sales invoice as
// shown to the user. The Turkish values come from the original data model and
// are kept as-is since they are persisted and rendered directly.
type SalesInvoiceStatus string

const (
	// SalesInvoiceStatusTaslak indicates the invoice is a draft and has not
	// been submitted to the e-invoice provider.
	SalesInvoiceStatusTaslak SalesInvoiceStatus = "taslak"
	// SalesInvoiceStatusGonderildi indicates the invoice was accepted by the
	// provider for delivery.
	SalesInvoiceStatusGonderildi SalesInvoiceStatus = "gonderildi"
	// SalesInvoiceStatusHata indicates the invoice is in an error state. The
	// send path never writes this value: a failed send leaves the invoice in
	// taslak so it can be retried without a reset step. The value is accepted
	// on input because rows imported from the upstream sales system or fixed
	// up by manual correction flows can carry it.
	SalesInvoiceStatusHata SalesInvoiceStatus = "hata"
)

func (s SalesInvoiceStatus) String() string {
	return string(s)
}

func (s SalesInvoiceStatus) Validate() error {
	allowed := []SalesInvoiceStatus{
		SalesInvoiceStatusTaslak,
		SalesInvoiceStatusGonderildi,
		SalesInvoiceStatusHata,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid sales invoice status").
			WithHint("Please provide a valid sales invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceProfile is the UBL-TR e-invoice document sub-type. TEMELFATURA is
// used for recipients outside the e-invoice network (archive delivery),
// TICARIFATURA for registered taxpayers reachable through a directory alias.
type InvoiceProfile string

const (
	InvoiceProfileTemel  InvoiceProfile = "TEMELFATURA"
	InvoiceProfileTicari InvoiceProfile = "TICARIFATURA"
)

func (p InvoiceProfile) String() string {
	return string(p)
}
