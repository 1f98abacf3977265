package integration

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"reyan-luxe/internal/handler"
	"reyan-luxe/internal/model"
	"reyan-luxe/internal/notifier"
	"reyan-luxe/internal/payment"
	"reyan-luxe/internal/repository"
	"reyan-luxe/internal/router"
	"reyan-luxe/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeySecret     = "test_secret"
	testWebhookSecret = "webhook_secret"
)

// startFakeGateway runs an HTTP server that answers gateway order creation.
func startFakeGateway(t *testing.T) *httptest.Server {
	t.Helper()

	counter := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"order_gw%d","status":"created"}`, counter)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupTestServer(t *testing.T, testDB *TestDB, gatewayURL string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	wishlistRepo := repository.NewWishlistRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)

	gateway := payment.NewRazorpayClient(payment.RazorpayConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     testKeySecret,
		WebhookSecret: testWebhookSecret,
		BaseURL:       gatewayURL,
	}, logger)

	n := notifier.Nop{}

	catalogService := service.NewCatalogService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, n, logger)
	paymentService := service.NewPaymentService(orderRepo, gateway, n, logger)
	cartService := service.NewCartService(cartRepo, wishlistRepo, productRepo, logger)
	accountService := service.NewAccountService(userRepo, n, logger)

	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	accountHandler := handler.NewAccountHandler(accountService, logger)

	return router.New(catalogHandler, orderHandler, paymentHandler, cartHandler, accountHandler, userRepo, logger)
}

func signHMAC(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func doJSON(server http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestCatalogAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	gateway := startFakeGateway(t)
	server := setupTestServer(t, testDB, gateway.URL)

	t.Run("GET /health is public", func(t *testing.T) {
		w := doJSON(server, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GET /api/bracelets needs no token", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool)

		w := doJSON(server, http.MethodGet, "/api/bracelets", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var bracelets []model.Bracelet
		require.NoError(t, json.NewDecoder(w.Body).Decode(&bracelets))
		require.Len(t, bracelets, 1)
		assert.Equal(t, "Aurelia Cuff", bracelets[0].Name)
	})

	t.Run("GET /api/orders without token is rejected", func(t *testing.T) {
		w := doJSON(server, http.MethodGet, "/api/orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCheckoutFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	gateway := startFakeGateway(t)
	server := setupTestServer(t, testDB, gateway.URL)

	placeOrder := func(t *testing.T, braceletID int64) string {
		t.Helper()

		body := []byte(`{
			"items": [{"productType": "bracelet", "productId": "` + strconv.FormatInt(braceletID, 10) + `", "quantity": 1}],
			"shippingAddress": "12 MG Road, Pune",
			"phone": "+911234567890",
			"email": "asha@example.com",
			"paymentMethod": "razorpay"
		}`)
		w := doJSON(server, http.MethodPost, "/api/orders", "tok-asha", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		return resp.Order.ID.String()
	}

	createGatewayOrder := func(t *testing.T, orderID string) string {
		t.Helper()

		w := doJSON(server, http.MethodPost, "/api/payments/razorpay/create_order", "tok-asha",
			[]byte(`{"order_id":"`+orderID+`"}`))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp model.CreateGatewayOrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotEmpty(t, resp.GatewayOrderID)
		return resp.GatewayOrderID
	}

	getOrder := func(t *testing.T, orderID string) *model.OrderResponse {
		t.Helper()

		w := doJSON(server, http.MethodGet, "/api/orders/"+orderID, "tok-asha", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp model.OrderResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		return &resp
	}

	t.Run("Client-side verification confirms the order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedUser(t, testDB.Pool, "asha@example.com", "tok-asha")
		braceletID, _ := SeedCatalog(t, testDB.Pool)

		orderID := placeOrder(t, braceletID)
		gatewayOrderID := createGatewayOrder(t, orderID)

		signature := signHMAC(gatewayOrderID+"|pay_1", testKeySecret)
		w := doJSON(server, http.MethodPost, "/api/payments/razorpay/verify_payment", "tok-asha",
			[]byte(`{"order_id":"`+orderID+`","gateway_order_id":"`+gatewayOrderID+`","gateway_payment_id":"pay_1","signature":"`+signature+`"}`))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		order := getOrder(t, orderID)
		assert.Equal(t, model.OrderStatusConfirmed, order.Order.Status)
		assert.Equal(t, model.PaymentStatusPaid, order.Order.PaymentStatus)
		require.NotNil(t, order.Order.TransactionID)
		assert.Equal(t, "pay_1", *order.Order.TransactionID)
	})

	t.Run("Tampered signature marks the payment failed", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedUser(t, testDB.Pool, "asha@example.com", "tok-asha")
		braceletID, _ := SeedCatalog(t, testDB.Pool)

		orderID := placeOrder(t, braceletID)
		gatewayOrderID := createGatewayOrder(t, orderID)

		signature := signHMAC(gatewayOrderID+"|pay_1", "wrong_secret")
		w := doJSON(server, http.MethodPost, "/api/payments/razorpay/verify_payment", "tok-asha",
			[]byte(`{"order_id":"`+orderID+`","gateway_order_id":"`+gatewayOrderID+`","gateway_payment_id":"pay_1","signature":"`+signature+`"}`))
		require.Equal(t, http.StatusBadRequest, w.Code)

		order := getOrder(t, orderID)
		assert.Equal(t, model.OrderStatusPending, order.Order.Status)
		assert.Equal(t, model.PaymentStatusFailed, order.Order.PaymentStatus)
	})

	t.Run("Webhook confirms the order without a token", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedUser(t, testDB.Pool, "asha@example.com", "tok-asha")
		braceletID, _ := SeedCatalog(t, testDB.Pool)

		orderID := placeOrder(t, braceletID)
		gatewayOrderID := createGatewayOrder(t, orderID)

		body := []byte(`{
			"event": "payment.captured",
			"payload": {
				"payment": {
					"entity": {
						"id": "pay_wh1",
						"order_id": "` + gatewayOrderID + `",
						"status": "captured",
						"notes": {"order_id": "` + orderID + `"}
					}
				}
			}
		}`)

		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/webhook", bytes.NewReader(body))
		req.Header.Set("X-Razorpay-Signature", signHMAC(string(body), testWebhookSecret))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		order := getOrder(t, orderID)
		assert.Equal(t, model.OrderStatusConfirmed, order.Order.Status)
		assert.Equal(t, model.PaymentStatusPaid, order.Order.PaymentStatus)
		require.NotNil(t, order.Order.TransactionID)
		assert.Equal(t, "pay_wh1", *order.Order.TransactionID)

		// Redelivery of the same event stays idempotent.
		req = httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/webhook", bytes.NewReader(body))
		req.Header.Set("X-Razorpay-Signature", signHMAC(string(body), testWebhookSecret))
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		again := getOrder(t, orderID)
		assert.Equal(t, "pay_wh1", *again.Order.TransactionID)
	})

	t.Run("Pending order can be cancelled", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedUser(t, testDB.Pool, "asha@example.com", "tok-asha")
		braceletID, _ := SeedCatalog(t, testDB.Pool)

		orderID := placeOrder(t, braceletID)

		w := doJSON(server, http.MethodPost, "/api/orders/"+orderID+"/cancel_order", "tok-asha", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		order := getOrder(t, orderID)
		assert.Equal(t, model.OrderStatusCancelled, order.Order.Status)
	})
}
