package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reyan-luxe/internal/middleware"
	"reyan-luxe/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentService is a mock implementation of PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateGatewayOrder(ctx context.Context, user *model.User, orderID uuid.UUID) (*model.CreateGatewayOrderResponse, error) {
	args := m.Called(ctx, user, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateGatewayOrderResponse), args.Error(1)
}

func (m *MockPaymentService) VerifyPayment(ctx context.Context, user *model.User, req *model.VerifyPaymentRequest) (*model.Order, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockPaymentService) RecordFailure(ctx context.Context, userID int64, req *model.PaymentFailedRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	args := m.Called(ctx, body, signature)
	return args.Error(0)
}

func authenticatedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	user := &model.User{ID: 42, Username: "asha", Email: "asha@example.com"}
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestPaymentHandler_CreateOrder_Success(t *testing.T) {
	orderID := uuid.New()

	mockService := new(MockPaymentService)
	mockService.On("CreateGatewayOrder", mock.Anything, mock.AnythingOfType("*model.User"), orderID).
		Return(&model.CreateGatewayOrderResponse{
			GatewayOrderID: "gw_1",
			Amount:         4999,
			Currency:       "INR",
			KeyID:          "rzp_test_key",
		}, nil)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(model.CreateGatewayOrderRequest{OrderID: orderID.String()})
	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/create_order", body)
	rec := httptest.NewRecorder()

	h.CreateOrder(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.CreateGatewayOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "gw_1", resp.GatewayOrderID)
	assert.Equal(t, int64(4999), resp.Amount)
}

func TestPaymentHandler_CreateOrder_MissingOrderID(t *testing.T) {
	h := NewPaymentHandler(new(MockPaymentService), zerolog.Nop())

	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/create_order", []byte(`{}`))
	rec := httptest.NewRecorder()

	h.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHandler_CreateOrder_MalformedID(t *testing.T) {
	h := NewPaymentHandler(new(MockPaymentService), zerolog.Nop())

	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/create_order",
		[]byte(`{"order_id":"not-a-uuid"}`))
	rec := httptest.NewRecorder()

	h.CreateOrder(rec, req)

	// Malformed ids are indistinguishable from absent orders.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandler_CreateOrder_Unauthenticated(t *testing.T) {
	h := NewPaymentHandler(new(MockPaymentService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/create_order", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	h.CreateOrder(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentHandler_VerifyPayment_Success(t *testing.T) {
	orderID := uuid.New()
	confirmed := &model.Order{ID: orderID, Status: model.OrderStatusConfirmed, PaymentStatus: model.PaymentStatusPaid}

	mockService := new(MockPaymentService)
	mockService.On("VerifyPayment", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.VerifyPaymentRequest")).
		Return(confirmed, nil)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	body := []byte(`{"gateway_order_id":"gw_1","gateway_payment_id":"pay_1","signature":"sig","order_id":"` + orderID.String() + `"}`)
	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/verify_payment", body)
	rec := httptest.NewRecorder()

	h.VerifyPayment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, orderID.String(), resp["order_id"])
}

func TestPaymentHandler_VerifyPayment_InvalidSignature(t *testing.T) {
	mockService := new(MockPaymentService)
	mockService.On("VerifyPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.ErrSignatureInvalid)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/verify_payment",
		[]byte(`{"gateway_order_id":"gw_1","gateway_payment_id":"pay_1","signature":"bad","order_id":"x"}`))
	rec := httptest.NewRecorder()

	h.VerifyPayment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Payment verification failed", resp.Error)
}

func TestPaymentHandler_VerifyPayment_OrderNotFound(t *testing.T) {
	mockService := new(MockPaymentService)
	mockService.On("VerifyPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, model.ErrOrderNotFound)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/verify_payment",
		[]byte(`{"gateway_order_id":"gw_1","gateway_payment_id":"pay_1","signature":"sig","order_id":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()

	h.VerifyPayment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandler_PaymentFailed(t *testing.T) {
	mockService := new(MockPaymentService)
	mockService.On("RecordFailure", mock.Anything, int64(42), mock.AnythingOfType("*model.PaymentFailedRequest")).
		Return(nil)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	req := authenticatedRequest(http.MethodPost, "/api/payments/razorpay/payment_failed",
		[]byte(`{"order_id":"`+uuid.NewString()+`","error_code":"BAD_CARD","error_description":"declined"}`))
	rec := httptest.NewRecorder()

	h.PaymentFailed(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_Webhook_Success(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	mockService := new(MockPaymentService)
	mockService.On("HandleWebhook", mock.Anything, body, "whsig").Return(nil)

	h := NewPaymentHandler(mockService, zerolog.Nop())

	// The webhook route never carries a user.
	req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/webhook", bytes.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", "whsig")
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	mockService.AssertExpectations(t)
}

func TestPaymentHandler_Webhook_InvalidJSON(t *testing.T) {
	body := []byte(`{"event":`)

	mockService := new(MockPaymentService)
	mockService.On("HandleWebhook", mock.Anything, body, "").
		Return(model.NewDomainError(model.ErrCodeInvalidJSON, "invalid webhook payload"))

	h := NewPaymentHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/webhook", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHandler_Webhook_MethodNotAllowed(t *testing.T) {
	h := NewPaymentHandler(new(MockPaymentService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/payments/razorpay/webhook", nil)
	rec := httptest.NewRecorder()

	h.Webhook(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
