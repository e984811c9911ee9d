package announcement

import (
	"database/sql"

	"go.uber.org/zap"

	"bakerydash/internal/announcement/controller"
	"bakerydash/internal/announcement/repository"
	"bakerydash/internal/announcement/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*controller.Controller, *service.AnnouncementService) {
	return NewModuleWithRepository(repository.NewMySQLAnnouncementRepository(db), logger)
}

func NewModuleWithRepository(repo service.Repository, logger *zap.Logger) (*controller.Controller, *service.AnnouncementService) {
	svc := service.NewService(repo, logger)
	return controller.NewController(svc, logger), svc
}
