package payment

import (
	"encoding/json"
	"fmt"
)

// Webhook event names we act on. Anything else parses into an envelope whose
// handling is an explicit no-op.
const (
	EventPaymentCaptured = "payment.captured"
)

// WebhookEnvelope is the outer webhook shape common to all gateway events.
type WebhookEnvelope struct {
	Event   string         `json:"event"`
	Payload WebhookPayload `json:"payload"`
}

// WebhookPayload wraps the per-event entity blocks.
type WebhookPayload struct {
	Payment *WebhookPaymentWrapper `json:"payment,omitempty"`
}

// WebhookPaymentWrapper holds the payment entity for payment.* events.
type WebhookPaymentWrapper struct {
	Entity WebhookPaymentEntity `json:"entity"`
}

// WebhookPaymentEntity is the subset of the gateway payment object we read.
// Notes round-trip from CreateOrder, carrying the local order id.
type WebhookPaymentEntity struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Amount  int64             `json:"amount"`
	Status  string            `json:"status"`
	Notes   map[string]string `json:"notes"`
}

// ParseWebhook decodes a raw webhook body. A body that is not valid JSON is
// the only parse error; unknown event names are returned as-is for the caller
// to ignore.
func ParseWebhook(body []byte) (*WebhookEnvelope, error) {
	var envelope WebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse webhook body: %w", err)
	}
	return &envelope, nil
}

// CapturedPayment extracts the payment entity from a payment.captured
// envelope. Returns nil for any other event or a malformed payload.
func (e *WebhookEnvelope) CapturedPayment() *WebhookPaymentEntity {
	if e.Event != EventPaymentCaptured || e.Payload.Payment == nil {
		return nil
	}
	return &e.Payload.Payment.Entity
}

// LocalOrderID returns the local order id carried in the payment notes, or
// empty when the gateway metadata does not reference one.
func (p *WebhookPaymentEntity) LocalOrderID() string {
	return p.Notes["order_id"]
}
