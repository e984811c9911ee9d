package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	announcementctrl "bakerydash/internal/announcement/controller"
	dashboardctrl "bakerydash/internal/dashboard/controller"
	orderctrl "bakerydash/internal/order/controller"
	productctrl "bakerydash/internal/product/controller"
)

type Handlers struct {
	Orders        *orderctrl.OrderController
	Recaps        *orderctrl.RecapController
	Products      *productctrl.Controller
	Announcements *announcementctrl.Controller
	Dashboard     *dashboardctrl.Controller
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", h.Orders.Routes)
		h.Recaps.Routes(r)
		r.Route("/products", h.Products.Routes)
		r.Route("/announcements", h.Announcements.Routes)
		r.Get("/dashboard", h.Dashboard.Overview)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
