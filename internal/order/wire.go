package order

import (
	"database/sql"

	"go.uber.org/zap"

	"bakerydash/internal/config"
	"bakerydash/internal/order/controller"
	orderrepo "bakerydash/internal/order/repository"
	"bakerydash/internal/order/service"
	"bakerydash/internal/order/usecase"
)

type Module struct {
	Orders  *controller.OrderController
	Recaps  *controller.RecapController
	Service *service.OrderService
	Recap   *usecase.RecapUseCase
}

// NewModule wires orders on MySQL with the given product catalogue.
func NewModule(db *sql.DB, catalog service.ProductCatalog, cfg *config.Config, logger *zap.Logger) *Module {
	return NewModuleWithStore(orderrepo.NewMySQLOrderRepository(db), catalog, cfg, logger)
}

// NewModuleWithStore wires orders on any order store.
func NewModuleWithStore(store service.OrderStore, catalog service.ProductCatalog, cfg *config.Config, logger *zap.Logger) *Module {
	svc := service.NewOrderService(store, catalog, logger, cfg.Order.MaxRetryAttempts)
	uc := usecase.NewRecapUseCase(svc, logger, cfg.Export.Location())

	return &Module{
		Orders:  controller.NewOrderController(svc, logger),
		Recaps:  controller.NewRecapController(uc, logger),
		Service: svc,
		Recap:   uc,
	}
}
