package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bakerydash/internal/domain"
)

type OrderLister interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type ProductLister interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type AnnouncementLister interface {
	List(ctx context.Context) ([]domain.Announcement, error)
}

// Overview is the landing page summary.
type Overview struct {
	OrdersByStatus      map[domain.OrderStatus]int
	PendingAmount       decimal.Decimal
	PendingItems        int
	ActiveProducts      int
	UnavailableProducts int
	PinnedAnnouncements int
	UrgentAnnouncements int
}

type DashboardService struct {
	orders        OrderLister
	products      ProductLister
	announcements AnnouncementLister
	logger        *zap.Logger
}

func NewService(orders OrderLister, products ProductLister, announcements AnnouncementLister, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orders:        orders,
		products:      products,
		announcements: announcements,
		logger:        logger,
	}
}

// Overview loads orders, products and announcements concurrently. The first
// failure cancels the other loads.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var (
		orders        []domain.Order
		products      []domain.Product
		announcements []domain.Announcement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.List(gctx, domain.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx, domain.ProductFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		announcements, err = s.announcements.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load dashboard", zap.Error(err))
		return nil, err
	}

	overview := &Overview{
		OrdersByStatus: make(map[domain.OrderStatus]int),
		PendingAmount:  decimal.Zero,
	}

	for _, o := range orders {
		overview.OrdersByStatus[o.Status]++
		if o.Status == domain.OrderStatusPending {
			overview.PendingAmount = overview.PendingAmount.Add(o.TotalTTC)
			overview.PendingItems += o.ItemCount()
		}
	}

	for _, p := range products {
		if p.IsActive {
			overview.ActiveProducts++
			if !p.IsAvailable {
				overview.UnavailableProducts++
			}
		}
	}

	for _, a := range announcements {
		if a.Pinned {
			overview.PinnedAnnouncements++
		}
		if a.Priority == domain.PriorityUrgent {
			overview.UrgentAnnouncements++
		}
	}

	return overview, nil
}
