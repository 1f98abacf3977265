package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"reyan-luxe/internal/lifecycle"
	"reyan-luxe/internal/model"
	"reyan-luxe/internal/notifier"
	"reyan-luxe/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderNumberAttempts bounds the creation retry loop. The order number embeds
// a second-resolution timestamp plus the user id, so collisions need the same
// user checking out twice in one second; the retry adds a random suffix.
const orderNumberAttempts = 3

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	notifier    notifier.Notifier
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	n notifier.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		notifier:    n,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         time.Now,
	}
}

// Create places a new order in pending/pending state. The order and its items
// are written in one transaction; the cart is emptied afterwards.
func (s *orderService) Create(ctx context.Context, user *model.User, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	// Snapshot prices from the catalog; subtotal is fixed here and never
	// recomputed. Customized products have no catalog row, so they carry
	// their own name and price.
	items := make([]model.OrderItem, len(req.Items))
	var total int64
	for i, line := range req.Items {
		snapshot, err := s.resolveItem(ctx, line)
		if err != nil {
			s.logger.Warn().
				Str("product_type", string(line.ProductType)).
				Str("product_id", line.ProductID).
				Err(err).
				Msg("product resolution failed")
			return nil, err
		}

		subtotal := snapshot.Price * int64(line.Quantity)
		items[i] = model.OrderItem{
			ID:          uuid.New(),
			ProductType: line.ProductType,
			ProductID:   line.ProductID,
			Name:        snapshot.Name,
			Price:       snapshot.Price,
			Quantity:    line.Quantity,
			Subtotal:    subtotal,
		}
		total += subtotal
	}

	order, err := s.createWithRetry(ctx, user, req, items, total)
	if err != nil {
		return nil, err
	}

	// Checkout consumed the cart. A failure here leaves stale cart lines but
	// never a broken order.
	if err := s.cartRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to empty cart after checkout")
	}

	lines := make([]notifier.OrderLine, len(items))
	for i, item := range items {
		lines[i] = notifier.OrderLine{Name: item.Name, Quantity: item.Quantity, Price: item.Price, Total: item.Subtotal}
	}
	s.notifier.OrderConfirmation(ctx, order.Email, order.OrderNumber, order.TotalAmount, lines, order.ShippingAddress)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Int64("total_amount", order.TotalAmount).
		Int("item_count", len(items)).
		Msg("order created successfully")

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// createWithRetry persists the order atomically, regenerating the order
// number on a uniqueness conflict.
func (s *orderService) createWithRetry(ctx context.Context, user *model.User, req *model.OrderRequest, items []model.OrderItem, total int64) (*model.Order, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		now := s.now()
		order := &model.Order{
			ID:              uuid.New(),
			UserID:          user.ID,
			OrderNumber:     generateOrderNumber(now, user.ID, attempt),
			Status:          model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			TotalAmount:     total,
			ShippingAddress: req.ShippingAddress,
			Phone:           req.Phone,
			Email:           req.Email,
			PaymentMethod:   req.PaymentMethod,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		created, err := s.tryCreate(ctx, order, items)
		if err != nil {
			if errors.Is(err, model.ErrDuplicateOrderNumber) && attempt < orderNumberAttempts-1 {
				s.logger.Warn().
					Str("order_number", order.OrderNumber).
					Int("attempt", attempt+1).
					Msg("retrying order creation with fresh order number")
				continue
			}
			return nil, err
		}
		return created, nil
	}

	return nil, model.ErrDuplicateOrderNumber
}

// tryCreate writes the order and its items in a single transaction.
func (s *orderService) tryCreate(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.Order, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order scoped to the owning user.
func (s *orderService) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// List returns the user's orders, newest first.
func (s *orderService) List(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Cancel cancels an order, allowed only from pending or confirmed.
func (s *orderService) Cancel(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.UpdateOrder(ctx, id, func(o *model.Order) error {
		return lifecycle.ApplyCancel(o)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderStatusChanged(ctx, updated.Email, updated.OrderNumber, string(updated.Status), "")

	s.logger.Info().
		Str("order_id", id.String()).
		Str("order_number", updated.OrderNumber).
		Msg("order cancelled")

	return updated, nil
}

// UpdateStatus moves an order to a new fulfilment status.
func (s *orderService) UpdateStatus(ctx context.Context, userID int64, id uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error) {
	if req == nil || req.Status == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "status is required")
	}

	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return nil, err
	}

	var changed bool
	updated, err := s.orderRepo.UpdateOrder(ctx, id, func(o *model.Order) error {
		var applyErr error
		changed, applyErr = lifecycle.ApplyStatusUpdate(o, req.Status)
		if applyErr != nil {
			return applyErr
		}
		if req.TrackingNumber != nil {
			o.TrackingNumber = req.TrackingNumber
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		tracking := ""
		if updated.TrackingNumber != nil {
			tracking = *updated.TrackingNumber
		}
		s.notifier.OrderStatusChanged(ctx, updated.Email, updated.OrderNumber, string(updated.Status), tracking)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(updated.Status)).
		Bool("changed", changed).
		Msg("order status updated")

	return updated, nil
}

// resolveItem produces the name/price snapshot for one order line. Catalog
// items are re-priced from the catalog so clients cannot dictate prices;
// customized items have no catalog row and carry their own.
func (s *orderService) resolveItem(ctx context.Context, line model.OrderItemRequest) (*model.ProductSnapshot, error) {
	if line.ProductType == model.ProductTypeCustomized {
		if line.Name == "" || line.Price <= 0 {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "customized item requires a name and price")
		}
		return &model.ProductSnapshot{
			ProductType: line.ProductType,
			ProductID:   line.ProductID,
			Name:        line.Name,
			Price:       line.Price,
		}, nil
	}

	return s.productRepo.ResolveProduct(ctx, line.ProductType, line.ProductID)
}

// checkOwnership hides other users' orders behind a not-found error.
func (s *orderService) checkOwnership(ctx context.Context, userID int64, id uuid.UUID) error {
	order, _, err := s.orderRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}
	return nil
}

// validateOrderRequest validates the order request.
func validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "order request is nil")
	}

	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}

	if req.ShippingAddress == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "shipping address is required")
	}

	if req.Email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "email is required")
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: product ID is required", i))
		}

		if !model.ValidProductType(item.ProductType) {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: invalid product type", i))
		}

		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// generateOrderNumber builds the human-facing order number from the creation
// timestamp and owner id. The first attempt matches the historical format;
// retries append a random suffix so a same-second checkout cannot collide
// twice.
func generateOrderNumber(now time.Time, userID int64, attempt int) string {
	base := fmt.Sprintf("ORD-%s-%d", now.Format("20060102150405"), userID)
	if attempt == 0 {
		return base
	}

	suffix := make([]byte, 2)
	_, _ = rand.Read(suffix)
	return base + "-" + hex.EncodeToString(suffix)
}
