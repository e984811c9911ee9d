package controller

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bakerydash/internal/commons"
	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
	"bakerydash/internal/recap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "production.xlsx"
)

type RecapUseCase interface {
	BakeryRecap(ctx context.Context, status domain.OrderStatus) ([]recap.BakeryRecap, recap.Summary, error)
	ProductRecap(ctx context.Context, status domain.OrderStatus) ([]recap.ProductRecap, error)
	Export(ctx context.Context, w io.Writer) error
}

type RecapController struct {
	useCase RecapUseCase
	logger  *zap.Logger
}

func NewRecapController(useCase RecapUseCase, logger *zap.Logger) *RecapController {
	return &RecapController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *RecapController) Routes(r chi.Router) {
	r.Get("/recap/bakeries", c.Bakeries)
	r.Get("/recap/products", c.Products)
	r.Get("/exports/"+exportFilename, c.Export)
}

// Bakeries serves the per-bakery recap. Without a status query it recaps
// PENDING orders; status=ALL recaps every order.
func (c *RecapController) Bakeries(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	status, ok := c.status(w, r, logger, domain.OrderStatusPending)
	if !ok {
		return
	}

	bakeries, summary, err := c.useCase.BakeryRecap(r.Context(), status)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	response := dto.NewBakeryRecapResponse(status, bakeries, summary)
	commons.WriteJSON(w, logger, http.StatusOK, response)
}

// Products serves the per-product recap. Without a status query it covers
// every order.
func (c *RecapController) Products(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	status, ok := c.status(w, r, logger, "")
	if !ok {
		return
	}

	products, err := c.useCase.ProductRecap(r.Context(), status)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	response := dto.NewProductRecapResponse(status, products)
	commons.WriteJSON(w, logger, http.StatusOK, response)
}

// Export streams the production workbook. It is rendered in memory first so
// a failure still produces a proper JSON error.
func (c *RecapController) Export(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	var buf bytes.Buffer
	if err := c.useCase.Export(r.Context(), &buf); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to stream workbook", zap.Error(err))
	}
}

func (c *RecapController) status(w http.ResponseWriter, r *http.Request, logger *zap.Logger, fallback domain.OrderStatus) (domain.OrderStatus, bool) {
	raw := r.URL.Query().Get("status")
	status, ok := domain.ParseStatusFilter(raw, fallback)
	if !ok {
		commons.WriteValidationError(w, logger, "invalid query parameter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown status " + strings.ToUpper(strings.TrimSpace(raw)),
		})
		return "", false
	}
	return status, true
}
