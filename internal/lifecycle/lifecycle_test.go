package lifecycle

import (
	"testing"

	"reyan-luxe/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder() *model.Order {
	return &model.Order{
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func TestApplyPaymentCaptured_PromotesPendingOrder(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentCaptured(order, "pay_1")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, "pay_1", *order.TransactionID)
}

func TestApplyPaymentCaptured_ReplayIsNoOp(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentCaptured(order, "pay_1")
	require.NoError(t, err)
	require.True(t, changed)

	first := *order

	// Second delivery of the same event, e.g. webhook after client verify.
	changed, err = ApplyPaymentCaptured(order, "pay_1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, *order)
}

func TestApplyPaymentCaptured_FirstTransactionIDWins(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentCaptured(order, "pay_1")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = ApplyPaymentCaptured(order, "pay_2")
	require.NoError(t, err)
	assert.False(t, changed)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, "pay_1", *order.TransactionID)
}

func TestApplyPaymentCaptured_DoesNotRegressAdvancedStatus(t *testing.T) {
	// An order already moved to shipped (e.g. cash on delivery, paid late)
	// keeps its fulfilment status; only the payment fields land.
	order := &model.Order{
		Status:        model.OrderStatusShipped,
		PaymentStatus: model.PaymentStatusPending,
	}

	changed, err := ApplyPaymentCaptured(order, "pay_1")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
}

func TestApplyPaymentCaptured_RecoversFromFailedAttempt(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentFailed(order, "Payment failed: BAD_CARD - declined")
	require.NoError(t, err)
	require.True(t, changed)

	// A successful retry supersedes the failed attempt.
	changed, err = ApplyPaymentCaptured(order, "pay_2")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
}

func TestApplyPaymentFailed_SetsFailedAndNotes(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentFailed(order, "Payment failed: BAD_CARD - declined")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusFailed, order.PaymentStatus)
	require.NotNil(t, order.Notes)
	assert.Equal(t, "Payment failed: BAD_CARD - declined", *order.Notes)
}

func TestApplyPaymentFailed_NeverDowngradesPaidOrder(t *testing.T) {
	order := pendingOrder()

	_, err := ApplyPaymentCaptured(order, "pay_1")
	require.NoError(t, err)

	changed, err := ApplyPaymentFailed(order, "late failure report")

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
	assert.Nil(t, order.Notes)
}

func TestApplyPaymentFailed_SameNotesReplayIsNoOp(t *testing.T) {
	order := pendingOrder()

	changed, err := ApplyPaymentFailed(order, "declined")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = ApplyPaymentFailed(order, "declined")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAttachGatewayOrder_SetOnce(t *testing.T) {
	order := pendingOrder()

	changed, err := AttachGatewayOrder(order, "gw_1")
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, order.GatewayOrderID)
	assert.Equal(t, "gw_1", *order.GatewayOrderID)

	// Re-attaching the same id is a no-op.
	changed, err = AttachGatewayOrder(order, "gw_1")
	require.NoError(t, err)
	assert.False(t, changed)

	// A different id conflicts with the stored idempotency key.
	changed, err = AttachGatewayOrder(order, "gw_2")
	assert.ErrorIs(t, err, model.ErrTransitionForbidden)
	assert.False(t, changed)
	assert.Equal(t, "gw_1", *order.GatewayOrderID)
}

func TestApplyCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  model.OrderStatus
		wantErr bool
	}{
		{"pending is cancellable", model.OrderStatusPending, false},
		{"confirmed is cancellable", model.OrderStatusConfirmed, false},
		{"processing is not cancellable", model.OrderStatusProcessing, true},
		{"shipped is not cancellable", model.OrderStatusShipped, true},
		{"delivered is not cancellable", model.OrderStatusDelivered, true},
		{"cancelled is not cancellable", model.OrderStatusCancelled, true},
		{"refunded is not cancellable", model.OrderStatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &model.Order{Status: tt.status, PaymentStatus: model.PaymentStatusPending}

			err := ApplyCancel(order)

			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrOrderNotCancellable)
				assert.Equal(t, tt.status, order.Status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.OrderStatusCancelled, order.Status)
				assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
			}
		})
	}
}

func TestApplyStatusUpdate_ValidTransition(t *testing.T) {
	order := &model.Order{Status: model.OrderStatusConfirmed}

	changed, err := ApplyStatusUpdate(order, model.OrderStatusShipped)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
}

func TestApplyStatusUpdate_SameStatusIsNoOp(t *testing.T) {
	order := &model.Order{Status: model.OrderStatusShipped}

	changed, err := ApplyStatusUpdate(order, model.OrderStatusShipped)

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyStatusUpdate_TerminalStatesRejectEveryTarget(t *testing.T) {
	targets := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}

	for _, terminal := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled} {
		for _, target := range targets {
			t.Run(string(terminal)+"_to_"+string(target), func(t *testing.T) {
				order := &model.Order{Status: terminal}

				changed, err := ApplyStatusUpdate(order, target)

				assert.ErrorIs(t, err, model.ErrTransitionForbidden)
				assert.False(t, changed)
				assert.Equal(t, terminal, order.Status)
			})
		}
	}
}

func TestApplyStatusUpdate_RejectsUnknownStatus(t *testing.T) {
	order := &model.Order{Status: model.OrderStatusPending}

	changed, err := ApplyStatusUpdate(order, model.OrderStatus("exploded"))

	require.Error(t, err)
	assert.False(t, changed)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
}

func TestApplyStatusUpdate_ProcessingIsNotARequestableTarget(t *testing.T) {
	order := &model.Order{Status: model.OrderStatusConfirmed}

	_, err := ApplyStatusUpdate(order, model.OrderStatusProcessing)

	require.Error(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
}
