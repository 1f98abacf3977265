package payment

import "context"

// Client defines the contract with the external payment gateway. Reconciliation
// correctness depends on two properties of this contract: CreateOrder must not
// be called twice for the same local order (callers reuse the stored gateway
// order id instead), and the Verify methods must be performed before any
// client-submitted confirmation is trusted.
type Client interface {
	// CreateOrder creates a gateway-side payment intent. Amount is in minor
	// currency units. Notes travel with the gateway order and come back in
	// webhook payloads, which is how webhooks are correlated to local orders.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (string, error)

	// VerifySignature checks the client-submitted payment confirmation.
	// Returns model.ErrSignatureInvalid on mismatch, which is distinct from a
	// reported payment failure.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error

	// VerifyWebhookSignature checks a raw webhook payload against the header
	// signature. When no webhook secret is configured the check is skipped;
	// that relaxed mode is deliberate for local development and is logged.
	VerifyWebhookSignature(body []byte, signature string) error
}

// KeyID returns the public key id a checkout widget needs. Implemented by the
// concrete client since it is provider configuration, not contract.
type KeyIDProvider interface {
	KeyID() string
}
