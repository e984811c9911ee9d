package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bakerydash/internal/announcement"
	"bakerydash/internal/dashboard"
	"bakerydash/internal/order"
	"bakerydash/internal/product"
	"bakerydash/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	productCtrl, productSvc := product.NewModuleWithRepository(b.products, log)
	announcementCtrl, announcementSvc := announcement.NewModuleWithRepository(b.announcements, log)
	orders := order.NewModuleWithStore(b.orders, b.products, cfg, log)

	router := server.NewRouter(server.Handlers{
		Orders:        orders.Orders,
		Recaps:        orders.Recaps,
		Products:      productCtrl,
		Announcements: announcementCtrl,
		Dashboard:     dashboard.NewModule(orders.Service, productSvc, announcementSvc, log),
	}, log)

	srv := server.New(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
