package service

import (
	"context"
	"errors"
	"fmt"

	"reyan-luxe/internal/lifecycle"
	"reyan-luxe/internal/model"
	"reyan-luxe/internal/notifier"
	"reyan-luxe/internal/payment"
	"reyan-luxe/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentService implements PaymentService. All status transitions run inside
// the repository's row-locked read-modify-write, so a client verify call and
// a webhook racing on the same order serialize there; whichever acquires the
// row first wins, and the loser observes an already-paid order and treats it
// as success.
type paymentService struct {
	orderRepo repository.OrderRepository
	gateway   payment.Client
	notifier  notifier.Notifier
	currency  string
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	gateway payment.Client,
	n notifier.Notifier,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		gateway:   gateway,
		notifier:  n,
		currency:  "INR",
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// CreateGatewayOrder creates the gateway-side order for a local order. The
// call is idempotent per order: once a gateway order id is stored it is
// reused, never created again. The amount sent to the gateway is the stored
// order total, not anything client-supplied.
func (s *paymentService) CreateGatewayOrder(ctx context.Context, user *model.User, orderID uuid.UUID) (*model.CreateGatewayOrderResponse, error) {
	order, _, err := s.orderRepo.GetByIDForUser(ctx, orderID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	gatewayOrderID := ""
	if order.GatewayOrderID != nil {
		gatewayOrderID = *order.GatewayOrderID
		s.logger.Debug().
			Str("order_id", orderID.String()).
			Str("gateway_order_id", gatewayOrderID).
			Msg("reusing existing gateway order")
	} else {
		// The local order id travels in the notes so webhook payloads can be
		// correlated back without any gateway-side lookup.
		notes := map[string]string{"order_id": order.ID.String()}
		gatewayOrderID, err = s.gateway.CreateOrder(ctx, order.TotalAmount, s.currency, order.OrderNumber, notes)
		if err != nil {
			s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("gateway order creation failed")
			return nil, err
		}

		_, err = s.orderRepo.UpdateOrder(ctx, orderID, func(o *model.Order) error {
			_, attachErr := lifecycle.AttachGatewayOrder(o, gatewayOrderID)
			return attachErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store gateway order id: %w", err)
		}

		s.logger.Info().
			Str("order_id", orderID.String()).
			Str("gateway_order_id", gatewayOrderID).
			Msg("gateway order created")
	}

	keyID := ""
	if kp, ok := s.gateway.(payment.KeyIDProvider); ok {
		keyID = kp.KeyID()
	}

	contact := ""
	if user.PhoneNumber != nil {
		contact = *user.PhoneNumber
	}

	return &model.CreateGatewayOrderResponse{
		GatewayOrderID: gatewayOrderID,
		Amount:         order.TotalAmount,
		Currency:       s.currency,
		KeyID:          keyID,
		Description:    fmt.Sprintf("Order #%s", order.OrderNumber),
		Prefill: model.Prefill{
			Name:    user.Username,
			Email:   user.Email,
			Contact: contact,
		},
	}, nil
}

// VerifyPayment reconciles the client-side confirmation channel. The
// signature is checked before anything is trusted; a mismatch marks the
// payment failed without touching the fulfilment status.
func (s *paymentService) VerifyPayment(ctx context.Context, user *model.User, req *model.VerifyPaymentRequest) (*model.Order, error) {
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" || req.OrderID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "all payment details are required")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, model.ErrOrderNotFound
	}

	order, _, err := s.orderRepo.GetByIDForUser(ctx, orderID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if err := s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		if errors.Is(err, model.ErrSignatureInvalid) {
			// Record the failed attempt; the error still propagates so the
			// caller gets a 400.
			if _, updateErr := s.orderRepo.UpdateOrder(ctx, orderID, func(o *model.Order) error {
				_, applyErr := lifecycle.ApplyPaymentFailed(o, "Payment verification failed: invalid signature")
				return applyErr
			}); updateErr != nil {
				s.logger.Error().Err(updateErr).Str("order_id", orderID.String()).Msg("failed to record signature failure")
			}
		}
		return nil, err
	}

	updated, changed, err := s.applyCaptured(ctx, orderID, req.GatewayPaymentID)
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifyPaymentConfirmed(ctx, updated, user)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("transaction_id", req.GatewayPaymentID).
		Bool("changed", changed).
		Msg("payment verified")

	return updated, nil
}

// RecordFailure stores a client-reported payment failure against the order.
func (s *paymentService) RecordFailure(ctx context.Context, userID int64, req *model.PaymentFailedRequest) error {
	if req.OrderID == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "order_id is required")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return model.ErrOrderNotFound
	}

	order, _, err := s.orderRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	notes := fmt.Sprintf("Payment failed: %s - %s", req.ErrorCode, req.ErrorDescription)
	_, err = s.orderRepo.UpdateOrder(ctx, orderID, func(o *model.Order) error {
		_, applyErr := lifecycle.ApplyPaymentFailed(o, notes)
		return applyErr
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("error_code", req.ErrorCode).
		Msg("payment failure recorded")

	return nil
}

// HandleWebhook reconciles the asynchronous gateway channel. The signature is
// the only authentication. Events other than payment.captured, and captured
// events we cannot correlate to an order, are deliberate no-ops: the gateway
// needs a 2xx to stop redelivery, and an unknown event is not an error.
// The event amount is not cross-checked against the stored total.
func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if err := s.gateway.VerifyWebhookSignature(body, signature); err != nil {
		return err
	}

	envelope, err := payment.ParseWebhook(body)
	if err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid webhook payload")
	}

	captured := envelope.CapturedPayment()
	if captured == nil {
		s.logger.Debug().Str("event", envelope.Event).Msg("ignoring webhook event")
		return nil
	}

	localOrderID := captured.LocalOrderID()
	if localOrderID == "" {
		s.logger.Warn().Str("gateway_payment_id", captured.ID).Msg("webhook payment has no order reference")
		return nil
	}

	orderID, err := uuid.Parse(localOrderID)
	if err != nil {
		s.logger.Warn().Str("order_id", localOrderID).Msg("webhook order reference is not a valid id")
		return nil
	}

	updated, changed, err := s.applyCaptured(ctx, orderID, captured.ID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			s.logger.Warn().Str("order_id", localOrderID).Msg("webhook references unknown order")
			return nil
		}
		return err
	}

	if changed {
		s.notifyPaymentConfirmed(ctx, updated, nil)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("transaction_id", captured.ID).
		Bool("changed", changed).
		Msg("webhook payment captured")

	return nil
}

// applyCaptured runs the paid transition under the row lock. changed=false
// means a replay: the order was already paid and nothing moved.
func (s *paymentService) applyCaptured(ctx context.Context, orderID uuid.UUID, transactionID string) (*model.Order, bool, error) {
	var changed bool
	updated, err := s.orderRepo.UpdateOrder(ctx, orderID, func(o *model.Order) error {
		var applyErr error
		changed, applyErr = lifecycle.ApplyPaymentCaptured(o, transactionID)
		return applyErr
	})
	if err != nil {
		return nil, false, err
	}
	return updated, changed, nil
}

// notifyPaymentConfirmed sends the post-payment notifications. user may be
// nil on the webhook path; the order snapshot carries the customer email.
func (s *paymentService) notifyPaymentConfirmed(ctx context.Context, order *model.Order, user *model.User) {
	s.notifier.PaymentConfirmed(ctx, order.Email, order.OrderNumber, order.TotalAmount, order.PaymentMethod)

	name := order.Email
	if user != nil {
		name = user.Username
	}
	s.notifier.AdminNewOrder(ctx, order.OrderNumber, order.TotalAmount, order.Email, name)
}
