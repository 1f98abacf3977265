package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// IsTerminal reports whether no further status transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentStatus is the payment state of an order, tracked independently of
// the fulfilment status.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ProductType tags which catalog family an order or cart line refers to.
// The catalog is split across disjoint product tables, so lines carry a
// (type, id) pair instead of a foreign key.
type ProductType string

const (
	ProductTypeBracelet   ProductType = "bracelet"
	ProductTypeChain      ProductType = "chain"
	ProductTypeCustomized ProductType = "customized"
)

// ValidProductType reports whether t is one of the closed set of tags.
func ValidProductType(t ProductType) bool {
	switch t {
	case ProductTypeBracelet, ProductTypeChain, ProductTypeCustomized:
		return true
	}
	return false
}

// Order is the aggregate root for a customer purchase. Amounts are in minor
// currency units (paise). Status fields are mutated only through the
// lifecycle transition functions.
type Order struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	UserID          int64         `json:"userId" db:"user_id"`
	OrderNumber     string        `json:"orderNumber" db:"order_number"`
	Status          OrderStatus   `json:"status" db:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" db:"payment_status"`
	TotalAmount     int64         `json:"totalAmount" db:"total_amount"`
	GatewayOrderID  *string       `json:"gatewayOrderId,omitempty" db:"gateway_order_id"`
	TransactionID   *string       `json:"transactionId,omitempty" db:"transaction_id"`
	ShippingAddress string        `json:"shippingAddress" db:"shipping_address"`
	Phone           string        `json:"phone" db:"phone"`
	Email           string        `json:"email" db:"email"`
	PaymentMethod   string        `json:"paymentMethod" db:"payment_method"`
	TrackingNumber  *string       `json:"trackingNumber,omitempty" db:"tracking_number"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item owned by exactly one order. Price and subtotal are
// snapshots taken at creation time and are never recomputed.
type OrderItem struct {
	ID          uuid.UUID   `json:"-" db:"id"`
	OrderID     uuid.UUID   `json:"-" db:"order_id"`
	ProductType ProductType `json:"productType" db:"product_type"`
	ProductID   string      `json:"productId" db:"product_id"`
	Name        string      `json:"name" db:"name"`
	Price       int64       `json:"price" db:"price"`
	Quantity    int         `json:"quantity" db:"quantity"`
	Subtotal    int64       `json:"subtotal" db:"subtotal"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// OrderItemRequest represents a single item in an order request. Name and
// Price are only read for customized products, which have no catalog row to
// resolve against; catalog items are always re-priced server-side.
type OrderItemRequest struct {
	ProductType ProductType `json:"productType"`
	ProductID   string      `json:"productId"`
	Quantity    int         `json:"quantity"`
	Name        string      `json:"name,omitempty"`
	Price       int64       `json:"price,omitempty"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// UpdateStatusRequest represents the request payload for an admin status change.
type UpdateStatusRequest struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber *string     `json:"trackingNumber,omitempty"`
}

// CreateGatewayOrderRequest represents the request payload for initiating a
// gateway payment.
type CreateGatewayOrderRequest struct {
	OrderID string `json:"order_id"`
}

// CreateGatewayOrderResponse carries what the browser checkout needs to open
// the gateway widget.
type CreateGatewayOrderResponse struct {
	GatewayOrderID string  `json:"gateway_order_id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	KeyID          string  `json:"key_id"`
	Description    string  `json:"description"`
	Prefill        Prefill `json:"prefill"`
}

// Prefill is the customer detail block echoed to the gateway checkout widget.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// VerifyPaymentRequest represents the client-side payment confirmation.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	OrderID          string `json:"order_id"`
}

// PaymentFailedRequest records a client-reported payment failure.
type PaymentFailedRequest struct {
	OrderID          string `json:"order_id"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}
