package types

import (
	ierr "github.com/emretit/paftamobile-sub005/internal/errors"
	"github.com/samber/lo"
)

// EInvoiceStatus represents the current state of an e-invoice document in the
// provider lifecycle. The happy path is
// draft -> sending -> sent -> delivered -> accepted | rejected, with cancelled
// and error reachable from any state.
type EInvoiceStatus string

const (
	EInvoiceStatusDraft     EInvoiceStatus = "draft"
	EInvoiceStatusSending   EInvoiceStatus = "sending"
	EInvoiceStatusSent      EInvoiceStatus = "sent"
	EInvoiceStatusDelivered EInvoiceStatus = "delivered"
	EInvoiceStatusAccepted  EInvoiceStatus = "accepted"
	EInvoiceStatusRejected  EInvoiceStatus = "rejected"
	EInvoiceStatusCancelled EInvoiceStatus = "cancelled"
	EInvoiceStatusError     EInvoiceStatus = "error"
)

// forwardTransitions holds the allowed happy-path transitions. Sending,
// cancelled and error are handled separately since they are reachable from
// several states.
var forwardTransitions = map[EInvoiceStatus][]EInvoiceStatus{
	EInvoiceStatusDraft:     {},
	EInvoiceStatusSending:   {EInvoiceStatusSent, EInvoiceStatusDraft},
	EInvoiceStatusSent:      {EInvoiceStatusDelivered, EInvoiceStatusAccepted, EInvoiceStatusRejected},
	EInvoiceStatusDelivered: {EInvoiceStatusAccepted, EInvoiceStatusRejected},
	EInvoiceStatusAccepted:  {},
	EInvoiceStatusRejected:  {},
	EInvoiceStatusCancelled: {},

	// A row lands in error on a transient failure too (a failed status poll,
	// a provider outage), so a later successful poll must be able to move it
	// to whatever the provider actually reports.
	EInvoiceStatusError: {EInvoiceStatusSent, EInvoiceStatusDelivered, EInvoiceStatusAccepted, EInvoiceStatusRejected},
}

func (s EInvoiceStatus) String() string {
	return string(s)
}

func (s EInvoiceStatus) Validate() error {
	allowed := []EInvoiceStatus{
		EInvoiceStatusDraft,
		EInvoiceStatusSending,
		EInvoiceStatusSent,
		EInvoiceStatusDelivered,
		EInvoiceStatusAccepted,
		EInvoiceStatusRejected,
		EInvoiceStatusCancelled,
		EInvoiceStatusError,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid e-invoice status").
			WithHint("Please provide a valid e-invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransition reports whether moving from s to target is a legal lifecycle
// transition. Error is reachable from every state; cancellation is possible
// until a commercial response lands; sending is re-enterable for resends as
// long as the document has not been answered.
func (s EInvoiceStatus) CanTransition(target EInvoiceStatus) bool {
	if s == target {
		return false
	}
	switch target {
	case EInvoiceStatusError:
		return true
	case EInvoiceStatusCancelled, EInvoiceStatusSending:
		return !s.IsTerminal()
	}
	return lo.Contains(forwardTransitions[s], target)
}

// IsTerminal reports whether no further provider-driven transitions are
// expected for the status.
func (s EInvoiceStatus) IsTerminal() bool {
	return s == EInvoiceStatusAccepted ||
		s == EInvoiceStatusRejected ||
		s == EInvoiceStatusCancelled
}

// Provider-native numeric codes. InvoiceState is reported by Nilvera on a
// status poll, AnswerType carries the recipient's commercial response.
const (
	NilveraInvoiceStateQueued    = 0
	NilveraInvoiceStateSent      = 1
	NilveraInvoiceStateDelivered = 2
	NilveraInvoiceStateFailed    = 3

	NilveraAnswerTypeNone     = 0
	NilveraAnswerTypeAccepted = 1
	NilveraAnswerTypeRejected = -1
)

// EInvoiceStatusFromProviderCodes maps the provider's numeric state pair to a
// lifecycle status. The answer type wins over the delivery state since a
// commercial response implies the document was delivered.
func EInvoiceStatusFromProviderCodes(invoiceState int, answerType int) EInvoiceStatus {
	switch answerType {
	case NilveraAnswerTypeAccepted:
		return EInvoiceStatusAccepted
	case NilveraAnswerTypeRejected:
		return EInvoiceStatusRejected
	}

	switch invoiceState {
	case NilveraInvoiceStateDelivered:
		return EInvoiceStatusDelivered
	case NilveraInvoiceStateFailed:
		return EInvoiceStatusError
	default:
		return EInvoiceStatusSent
	}
}
