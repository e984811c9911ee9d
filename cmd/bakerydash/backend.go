package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	announcementrepo "bakerydash/internal/announcement/repository"
	announcementservice "bakerydash/internal/announcement/service"
	"bakerydash/internal/config"
	"bakerydash/internal/infrastructure/mysql"
	orderrepo "bakerydash/internal/order/repository"
	orderservice "bakerydash/internal/order/service"
	productrepo "bakerydash/internal/product/repository"
	productservice "bakerydash/internal/product/service"
	"bakerydash/internal/upstream"
)

// backend bundles the stores of the configured source.
type backend struct {
	orders        orderservice.OrderStore
	products      productservice.Repository
	announcements announcementservice.Repository
	db            *sql.DB
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backend, error) {
	switch cfg.Source.Kind {
	case config.SourceAPI:
		return openUpstream(ctx, cfg.Upstream, logger)
	default:
		return openMySQL(cfg.Database, logger)
	}
}

func openMySQL(cfg config.DatabaseConfig, logger *zap.Logger) (*backend, error) {
	db, err := mysql.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", zap.String("host", cfg.Host), zap.String("name", cfg.Name))

	return &backend{
		orders:        orderrepo.NewMySQLOrderRepository(db),
		products:      productrepo.NewMySQLRepository(db),
		announcements: announcementrepo.NewMySQLAnnouncementRepository(db),
		db:            db,
	}, nil
}

// openUpstream logs in with email and password when no token is configured.
func openUpstream(ctx context.Context, cfg config.UpstreamConfig, logger *zap.Logger) (*backend, error) {
	client := upstream.New(cfg.BaseURL, nil, cfg.Timeout, upstream.NewSession(cfg.Token), logger)

	if cfg.Token == "" {
		if cfg.Email == "" || cfg.Password == "" {
			return nil, errors.New("upstream source needs a token or email and password")
		}
		if _, err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
			return nil, fmt.Errorf("logging in to upstream: %w", err)
		}
	}
	logger.Info("using upstream api", zap.String("baseUrl", cfg.BaseURL))

	return &backend{
		orders:        client.Orders(),
		products:      client.Products(),
		announcements: client.Announcements(),
	}, nil
}
