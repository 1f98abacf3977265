package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reyan-luxe/internal/model"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// razorpayClient implements Client against the Razorpay REST API.
type razorpayClient struct {
	httpClient    *http.Client
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	logger        zerolog.Logger
}

// RazorpayConfig holds the gateway credentials. WebhookSecret may be empty;
// webhook signature verification is then skipped.
type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string // defaults to the production API when empty
}

// NewRazorpayClient creates a new Razorpay-backed gateway client.
func NewRazorpayClient(cfg RazorpayConfig, logger zerolog.Logger) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &razorpayClient{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       baseURL,
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger.With().Str("component", "razorpay-client").Logger(),
	}
}

// createOrderRequest is the gateway order creation payload.
type createOrderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt,omitempty"`
	PaymentCapture int               `json:"payment_capture"`
	Notes          map[string]string `json:"notes,omitempty"`
}

// createOrderResponse is the subset of the gateway response we use.
type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order with automatic capture.
func (c *razorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (string, error) {
	payload := createOrderRequest{
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
		Notes:          notes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gateway order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("gateway order request failed")
		return "", fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("gateway order creation rejected")
		return "", model.ErrGatewayFailure
	}

	var created createOrderResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if created.ID == "" {
		return "", model.ErrGatewayFailure
	}

	c.logger.Info().
		Str("gateway_order_id", created.ID).
		Int64("amount", created.Amount).
		Msg("gateway order created")

	return created.ID, nil
}

// VerifySignature checks hex(HMAC-SHA256(orderID|paymentID, keySecret))
// against the client-submitted signature in constant time.
func (c *razorpayClient) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	expected := signPayload([]byte(gatewayOrderID+"|"+gatewayPaymentID), c.keySecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		c.logger.Warn().
			Str("gateway_order_id", gatewayOrderID).
			Str("gateway_payment_id", gatewayPaymentID).
			Msg("payment signature mismatch")
		return model.ErrSignatureInvalid
	}
	return nil
}

// VerifyWebhookSignature checks the raw webhook body against the signature
// header. With no webhook secret configured the check is skipped; the gateway
// dashboard may legitimately run without one in development.
func (c *razorpayClient) VerifyWebhookSignature(body []byte, signature string) error {
	if c.webhookSecret == "" {
		c.logger.Warn().Msg("webhook secret not configured, skipping signature verification")
		return nil
	}

	expected := signPayload(body, c.webhookSecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		c.logger.Warn().Msg("webhook signature mismatch")
		return model.ErrSignatureInvalid
	}
	return nil
}

// KeyID returns the public key id for checkout prefill.
func (c *razorpayClient) KeyID() string {
	return c.keyID
}

// signPayload returns hex(HMAC-SHA256(payload, secret)).
func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
