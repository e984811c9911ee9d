package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

type OrderStore interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) error
}

type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type OrderService struct {
	store            OrderStore
	catalog          ProductCatalog
	logger           *zap.Logger
	maxRetryAttempts int
	now              func() time.Time
	sleep            func(ctx context.Context, d time.Duration) error
}

func NewOrderService(store OrderStore, catalog ProductCatalog, logger *zap.Logger, maxRetryAttempts int) *OrderService {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &OrderService{
		store:            store,
		catalog:          catalog,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		now:              time.Now,
		sleep:            sleepContext,
	}
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.store.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.FindByID(ctx, id)
}

// Create prices every line from the catalogue and stores a new PENDING order.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	ids := make([]string, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var details []apperrors.ValidationDetail
	items := make([]domain.OrderLineItem, 0, len(req.Items))
	for idx, item := range req.Items {
		field := "items[" + strconv.Itoa(idx) + "].productId"
		p, ok := byID[item.ProductID]
		if !ok {
			details = append(details, apperrors.ValidationDetail{Field: field, Message: "product not found"})
			continue
		}
		if !p.Orderable() {
			details = append(details, apperrors.ValidationDetail{Field: field, Message: "product is not available for ordering"})
			continue
		}

		ref := p.ID
		items = append(items, domain.OrderLineItem{
			ProductName:  p.Name,
			ProductRef:   &ref,
			Laboratory:   p.Laboratory,
			UnitPriceHT:  p.UnitPriceHT,
			UnitPriceTTC: p.UnitPriceTTC(),
			TaxRate:      p.TaxRate,
			Quantity:     item.Quantity,
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("order contains invalid products", details...)
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:              uuid.NewString(),
		Reference:       newReference(now),
		BakeryName:      req.BakeryName,
		ScheduledDate:   req.ScheduledDate,
		Status:          domain.OrderStatusPending,
		Notes:           req.Notes,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.RecomputeTotals()

	err = s.withRetry(ctx, order.ID, func() error {
		return s.store.Create(ctx, order)
	})
	if err != nil {
		s.logger.Error("failed to create order", zap.String("bakery", order.BakeryName), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("reference", order.Reference),
		zap.String("bakery", order.BakeryName),
		zap.Int("lineCount", len(order.Items)),
		zap.String("totalTTC", order.TotalTTC.StringFixed(2)),
	)
	return order, nil
}

// UpdateStatus moves the order to status to when the lifecycle allows it.
// The store only applies the change if the order is still in the status read
// here, so a concurrent change surfaces as a conflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error) {
	if !to.Valid() {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", to),
		})
	}

	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == to {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: fmt.Sprintf("order is already %s", to),
		})
	}

	if !order.Status.CanTransitionTo(to) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("order %s cannot move from %s to %s", id, order.Status, to))
	}

	update := domain.StatusUpdate{From: order.Status, To: to, Notes: notes}
	if to == domain.OrderStatusDelivered {
		deliveredAt := s.now().UTC()
		update.DeliveredAt = &deliveredAt
	}

	err = s.withRetry(ctx, id, func() error {
		return s.store.UpdateStatus(ctx, id, update)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("orderId", id),
		zap.String("from", string(update.From)),
		zap.String("to", string(update.To)),
	)

	return s.store.FindByID(ctx, id)
}

// withRetry runs fn again when MySQL reports a deadlock or a lock wait
// timeout, backing off 100ms then 200ms with ±20% jitter.
func (s *OrderService) withRetry(ctx context.Context, orderID string, fn func() error) error {
	backoffs := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !isDeadlockError(err) {
			return err
		}

		if attempt >= s.maxRetryAttempts {
			return apperrors.NewConflictError("order store is busy, retries exhausted")
		}

		base := backoffs[min(attempt-1, len(backoffs)-1)]
		wait := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
		s.logger.Warn("deadlock detected, retrying",
			zap.String("orderId", orderID),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", s.maxRetryAttempts),
			zap.Duration("backoff", wait),
		)
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newReference builds the human readable order reference, e.g. CMD-20260302-1A2B3C4D.
func newReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CMD-" + now.Format("20060102") + "-" + suffix
}
