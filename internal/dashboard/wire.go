package dashboard

import (
	"go.uber.org/zap"

	"bakerydash/internal/dashboard/controller"
	"bakerydash/internal/dashboard/service"
)

func NewModule(orders service.OrderLister, products service.ProductLister, announcements service.AnnouncementLister, logger *zap.Logger) *controller.Controller {
	return controller.NewController(service.NewService(orders, products, announcements, logger), logger)
}
