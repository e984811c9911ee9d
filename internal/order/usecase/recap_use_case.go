package usecase

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/export"
	"bakerydash/internal/recap"
)

type OrderLister interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// RecapUseCase loads orders and folds them into the production recaps.
type RecapUseCase struct {
	orders   OrderLister
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

func NewRecapUseCase(orders OrderLister, logger *zap.Logger, location *time.Location) *RecapUseCase {
	if location == nil {
		location = time.UTC
	}
	return &RecapUseCase{
		orders:   orders,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// BakeryRecap groups the orders in status by bakery. An empty status
// recaps every order.
func (uc *RecapUseCase) BakeryRecap(ctx context.Context, status domain.OrderStatus) ([]recap.BakeryRecap, recap.Summary, error) {
	orders, err := uc.orders.List(ctx, domain.OrderFilter{Status: status})
	if err != nil {
		return nil, recap.Summary{}, err
	}

	bakeries := recap.BakeriesWithStatus(orders, status)
	summary := recap.Totals(bakeries)

	uc.logger.Debug("bakery recap computed",
		zap.String("status", string(status)),
		zap.Int("orders", len(orders)),
		zap.Int("bakeries", len(bakeries)),
	)
	return bakeries, summary, nil
}

// ProductRecap groups every line item of the orders in status by product.
// An empty status recaps every order.
func (uc *RecapUseCase) ProductRecap(ctx context.Context, status domain.OrderStatus) ([]recap.ProductRecap, error) {
	orders, err := uc.orders.List(ctx, domain.OrderFilter{Status: status})
	if err != nil {
		return nil, err
	}

	products := recap.Products(orders)

	uc.logger.Debug("product recap computed",
		zap.String("status", string(status)),
		zap.Int("orders", len(orders)),
		zap.Int("products", len(products)),
	)
	return products, nil
}

// Export writes the production workbook of the PENDING orders to w.
func (uc *RecapUseCase) Export(ctx context.Context, w io.Writer) error {
	orders, err := uc.orders.List(ctx, domain.OrderFilter{Status: domain.OrderStatusPending})
	if err != nil {
		return err
	}

	opts := export.Options{GeneratedAt: uc.now(), Location: uc.location}
	if err := export.Write(w, orders, opts); err != nil {
		uc.logger.Error("failed to write production workbook", zap.Error(err))
		return err
	}

	uc.logger.Info("production workbook exported", zap.Int("orders", len(orders)))
	return nil
}
