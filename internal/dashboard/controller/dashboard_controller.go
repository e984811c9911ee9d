package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"bakerydash/internal/commons"
	"bakerydash/internal/dashboard/service"
	"bakerydash/internal/dto"
)

type DashboardService interface {
	Overview(ctx context.Context) (*service.Overview, error)
}

type Controller struct {
	service DashboardService
	logger  *zap.Logger
}

func NewController(service DashboardService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Overview(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	overview, err := c.service.Overview(r.Context())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	byStatus := make(map[string]int, len(overview.OrdersByStatus))
	for status, count := range overview.OrdersByStatus {
		byStatus[string(status)] = count
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.DashboardResponse{
		OrdersByStatus:      byStatus,
		PendingAmount:       dto.Money(overview.PendingAmount),
		PendingItems:        overview.PendingItems,
		ActiveProducts:      overview.ActiveProducts,
		UnavailableProducts: overview.UnavailableProducts,
		PinnedAnnouncements: overview.PinnedAnnouncements,
		UrgentAnnouncements: overview.UrgentAnnouncements,
	})
}
