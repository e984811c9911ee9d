package product

import (
	"database/sql"

	"go.uber.org/zap"

	"bakerydash/internal/product/controller"
	"bakerydash/internal/product/repository"
	"bakerydash/internal/product/service"
)

// NewModule builds the catalogue on top of MySQL.
func NewModule(db *sql.DB, logger *zap.Logger) (*controller.Controller, *service.ProductService) {
	return NewModuleWithRepository(repository.NewMySQLRepository(db), logger)
}

// NewModuleWithRepository builds the catalogue on any product store.
func NewModuleWithRepository(repo service.Repository, logger *zap.Logger) (*controller.Controller, *service.ProductService) {
	svc := service.NewService(repo, logger)
	return controller.NewController(svc, logger), svc
}
