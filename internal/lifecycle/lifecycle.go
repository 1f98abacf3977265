// Package lifecycle holds the order state machine as pure functions over the
// order aggregate. The functions perform no I/O, so the reconciliation rules
// can be tested without a database or HTTP harness. Callers are responsible
// for running each transition inside a serialized read-modify-write on the
// order record.
package lifecycle

import "reyan-luxe/internal/model"

// ApplyPaymentCaptured reconciles a successful payment confirmation. It is
// idempotent under replay: once the order is paid, re-applying is a no-op
// regardless of which channel (client verify or webhook) delivered the event
// first, and the first transaction id wins.
//
// The status is promoted to confirmed only from pending. An order that has
// already moved on (processing, shipped) keeps its status; only the payment
// bookkeeping lands.
func ApplyPaymentCaptured(o *model.Order, transactionID string) (bool, error) {
	if o.PaymentStatus == model.PaymentStatusPaid {
		return false, nil
	}

	o.PaymentStatus = model.PaymentStatusPaid
	txn := transactionID
	o.TransactionID = &txn

	if o.Status == model.OrderStatusPending {
		o.Status = model.OrderStatusConfirmed
	}

	return true, nil
}

// ApplyPaymentFailed records a failed payment attempt. The fulfilment status
// is never touched; a failed attempt does not cancel the order. Re-applying
// with identical notes is a no-op.
func ApplyPaymentFailed(o *model.Order, notes string) (bool, error) {
	if o.PaymentStatus == model.PaymentStatusPaid {
		// A confirmed payment is not downgraded by a late failure report.
		return false, nil
	}

	if o.PaymentStatus == model.PaymentStatusFailed && o.Notes != nil && *o.Notes == notes {
		return false, nil
	}

	o.PaymentStatus = model.PaymentStatusFailed
	if notes != "" {
		n := notes
		o.Notes = &n
	}

	return true, nil
}

// AttachGatewayOrder records the gateway-side order id. The id is set once:
// re-attaching the same id is a no-op, and attaching a different id once one
// is stored is an error, because the stored id is the idempotency key for all
// gateway correlation.
func AttachGatewayOrder(o *model.Order, gatewayOrderID string) (bool, error) {
	if o.GatewayOrderID != nil {
		if *o.GatewayOrderID == gatewayOrderID {
			return false, nil
		}
		return false, model.ErrTransitionForbidden
	}

	id := gatewayOrderID
	o.GatewayOrderID = &id
	return true, nil
}

// ApplyCancel cancels an order. Cancellation is allowed only before
// fulfilment starts, from pending or confirmed. The payment status is left
// unchanged; refunds are a separate concern.
func ApplyCancel(o *model.Order) error {
	switch o.Status {
	case model.OrderStatusPending, model.OrderStatusConfirmed:
		o.Status = model.OrderStatusCancelled
		return nil
	default:
		return model.ErrOrderNotCancellable
	}
}

// validStatusTargets is the closed set update requests may name.
var validStatusTargets = map[model.OrderStatus]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusConfirmed: true,
	model.OrderStatusShipped:   true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

// ApplyStatusUpdate moves the order to a new fulfilment status. Transitions
// out of a terminal status (delivered, cancelled) are forbidden. Re-asserting
// the current status is a no-op, not an error.
func ApplyStatusUpdate(o *model.Order, newStatus model.OrderStatus) (bool, error) {
	if !validStatusTargets[newStatus] {
		return false, model.NewDomainError(model.ErrCodeMissingField, "invalid status: "+string(newStatus))
	}

	if o.Status.IsTerminal() {
		return false, model.ErrTransitionForbidden
	}

	if o.Status == newStatus {
		return false, nil
	}

	o.Status = newStatus
	return true, nil
}
