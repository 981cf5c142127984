package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEInvoiceStatusCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    EInvoiceStatus
		to      EInvoiceStatus
		allowed bool
	}{
		{"draft to sending", EInvoiceStatusDraft, EInvoiceStatusSending, true},
		{"sending to sent", EInvoiceStatusSending, EInvoiceStatusSent, true},
		{"sending back to draft", EInvoiceStatusSending, EInvoiceStatusDraft, true},
		{"sent to delivered", EInvoiceStatusSent, EInvoiceStatusDelivered, true},
		{"sent to accepted", EInvoiceStatusSent, EInvoiceStatusAccepted, true},
		{"sent to rejected", EInvoiceStatusSent, EInvoiceStatusRejected, true},
		{"delivered to accepted", EInvoiceStatusDelivered, EInvoiceStatusAccepted, true},
		{"delivered to rejected", EInvoiceStatusDelivered, EInvoiceStatusRejected, true},

		{"no self transition", EInvoiceStatusSent, EInvoiceStatusSent, false},
		{"no skipping from draft to sent", EInvoiceStatusDraft, EInvoiceStatusSent, false},
		{"no regression delivered to sent", EInvoiceStatusDelivered, EInvoiceStatusSent, false},
		{"no regression accepted to delivered", EInvoiceStatusAccepted, EInvoiceStatusDelivered, false},

		{"error reachable from draft", EInvoiceStatusDraft, EInvoiceStatusError, true},
		{"error reachable from delivered", EInvoiceStatusDelivered, EInvoiceStatusError, true},
		{"error reachable from accepted", EInvoiceStatusAccepted, EInvoiceStatusError, true},

		{"cancel before response", EInvoiceStatusSent, EInvoiceStatusCancelled, true},
		{"cancel after accept", EInvoiceStatusAccepted, EInvoiceStatusCancelled, false},
		{"cancel after reject", EInvoiceStatusRejected, EInvoiceStatusCancelled, false},

		{"resend after error", EInvoiceStatusError, EInvoiceStatusSending, true},
		{"error recovers to sent", EInvoiceStatusError, EInvoiceStatusSent, true},
		{"error recovers to delivered", EInvoiceStatusError, EInvoiceStatusDelivered, true},
		{"error recovers to accepted", EInvoiceStatusError, EInvoiceStatusAccepted, true},
		{"error recovers to rejected", EInvoiceStatusError, EInvoiceStatusRejected, true},
		{"error cannot recover to draft", EInvoiceStatusError, EInvoiceStatusDraft, false},
		{"resend after delivery", EInvoiceStatusDelivered, EInvoiceStatusSending, true},
		{"no resend after accept", EInvoiceStatusAccepted, EInvoiceStatusSending, false},
		{"no resend after cancel", EInvoiceStatusCancelled, EInvoiceStatusSending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestEInvoiceStatusIsTerminal(t *testing.T) {
	assert.True(t, EInvoiceStatusAccepted.IsTerminal())
	assert.True(t, EInvoiceStatusRejected.IsTerminal())
	assert.True(t, EInvoiceStatusCancelled.IsTerminal())

	assert.False(t, EInvoiceStatusDraft.IsTerminal())
	assert.False(t, EInvoiceStatusSending.IsTerminal())
	assert.False(t, EInvoiceStatusSent.IsTerminal())
	assert.False(t, EInvoiceStatusDelivered.IsTerminal())
	assert.False(t, EInvoiceStatusError.IsTerminal())
}

func TestEInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, EInvoiceStatusSent.Validate())
	assert.Error(t, EInvoiceStatus("shipped").Validate())
}

func TestEInvoiceStatusFromProviderCodes(t *testing.T) {
	tests := []struct {
		name         string
		invoiceState int
		answerType   int
		expected     EInvoiceStatus
	}{
		{"queued no answer", NilveraInvoiceStateQueued, NilveraAnswerTypeNone, EInvoiceStatusSent},
		{"sent no answer", NilveraInvoiceStateSent, NilveraAnswerTypeNone, EInvoiceStatusSent},
		{"delivered no answer", NilveraInvoiceStateDelivered, NilveraAnswerTypeNone, EInvoiceStatusDelivered},
		{"failed delivery", NilveraInvoiceStateFailed, NilveraAnswerTypeNone, EInvoiceStatusError},

		// The commercial response wins over the delivery state
		{"accepted", NilveraInvoiceStateDelivered, NilveraAnswerTypeAccepted, EInvoiceStatusAccepted},
		{"rejected", NilveraInvoiceStateDelivered, NilveraAnswerTypeRejected, EInvoiceStatusRejected},
		{"accepted while still marked sent", NilveraInvoiceStateSent, NilveraAnswerTypeAccepted, EInvoiceStatusAccepted},
		{"rejected on failed state", NilveraInvoiceStateFailed, NilveraAnswerTypeRejected, EInvoiceStatusRejected},

		{"unknown state falls back to sent", 7, NilveraAnswerTypeNone, EInvoiceStatusSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EInvoiceStatusFromProviderCodes(tt.invoiceState, tt.answerType))
		})
	}
}
