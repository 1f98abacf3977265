// Package notifier sends transactional email and SMS. Every send is
// best-effort: failures are logged and never propagated, so a notification
// problem can never roll back an order transition or fail an API call.
package notifier

import "context"

// OrderLine is the item view rendered into confirmation messages.
type OrderLine struct {
	Name     string
	Quantity int
	Price    int64
	Total    int64
}

// Notifier sends customer and admin notifications. Implementations must be
// safe for concurrent use and must not return errors; delivery is fire and
// forget.
type Notifier interface {
	// OrderConfirmation tells the customer their order was placed.
	OrderConfirmation(ctx context.Context, userEmail, orderNumber string, totalAmount int64, items []OrderLine, shippingAddress string)

	// OrderStatusChanged tells the customer about a fulfilment status change.
	// trackingNumber may be empty.
	OrderStatusChanged(ctx context.Context, userEmail, orderNumber, status, trackingNumber string)

	// PaymentConfirmed tells the customer their payment went through.
	PaymentConfirmed(ctx context.Context, userEmail, orderNumber string, amount int64, paymentMethod string)

	// AdminNewOrder tells the shop operator a paid order is waiting.
	AdminNewOrder(ctx context.Context, orderNumber string, totalAmount int64, customerEmail, customerName string)

	// SendOTP delivers a one-time code by email, and by SMS when a phone
	// number is available.
	SendOTP(ctx context.Context, email, phone, code string)
}

// Nop is a Notifier that does nothing. Used in tests and when notifications
// are disabled by configuration.
type Nop struct{}

func (Nop) OrderConfirmation(context.Context, string, string, int64, []OrderLine, string) {}
func (Nop) OrderStatusChanged(context.Context, string, string, string, string)           {}
func (Nop) PaymentConfirmed(context.Context, string, string, int64, string)              {}
func (Nop) AdminNewOrder(context.Context, string, int64, string, string)                 {}
func (Nop) SendOTP(context.Context, string, string, string)                              {}
