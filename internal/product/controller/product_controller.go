package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bakerydash/internal/commons"
	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

var one = decimal.NewFromInt(1)

type ProductService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, req dto.ProductRequest, actor string) (*domain.Product, error)
	Update(ctx context.Context, id string, req dto.ProductRequest, actor string) (*domain.Product, error)
	Delete(ctx context.Context, id, actor string) error
}

type Controller struct {
	service ProductService
	logger  *zap.Logger
}

func NewController(service ProductService, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/{productId}", c.Get)
	r.Put("/{productId}", c.Update)
	r.Delete("/{productId}", c.Delete)
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	filter := domain.ProductFilter{
		Laboratory: r.URL.Query().Get("laboratory"),
		Category:   r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			commons.WriteValidationError(w, logger, "invalid query parameter", apperrors.ValidationDetail{
				Field:   "active",
				Message: "active must be true or false",
			})
			return
		}
		filter.Active = &active
	}

	products, err := c.service.List(r.Context(), filter)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	response := dto.ProductListResponse{
		Products: make([]dto.ProductDTO, len(products)),
		Count:    len(products),
	}
	for i := range products {
		response.Products[i] = toProductDTO(&products[i])
	}

	commons.WriteJSON(w, logger, http.StatusOK, response)
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	p, err := c.service.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toProductDTO(p))
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	req, ok := c.decode(w, r, logger)
	if !ok {
		return
	}

	p, err := c.service.Create(r.Context(), req, commons.Actor(r))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, toProductDTO(p))
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	req, ok := c.decode(w, r, logger)
	if !ok {
		return
	}

	p, err := c.service.Update(r.Context(), chi.URLParam(r, "productId"), req, commons.Actor(r))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toProductDTO(p))
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	if err := c.service.Delete(r.Context(), chi.URLParam(r, "productId"), commons.Actor(r)); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return req, false
	}

	if details := validateProductRequest(req); len(details) > 0 {
		commons.WriteValidationError(w, logger, "validation failed", details...)
		return req, false
	}

	return req, true
}

func validateProductRequest(req dto.ProductRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}

	if strings.TrimSpace(req.Laboratory) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "laboratory",
			Message: "laboratory is required",
		})
	}

	if req.UnitPriceHT.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "unitPriceHT",
			Message: "unitPriceHT must be non-negative",
		})
	}

	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThanOrEqual(one) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "taxRate",
			Message: "taxRate must be a fraction between 0 and 1",
		})
	}

	if req.PrepTimeMinutes != nil && *req.PrepTimeMinutes < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "prepTimeMinutes",
			Message: "prepTimeMinutes must be non-negative",
		})
	}

	return details
}

func toProductDTO(p *domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Laboratory:      p.Laboratory,
		Ingredients:     p.Ingredients,
		UnitPriceHT:     dto.Money(p.UnitPriceHT),
		UnitPriceTTC:    dto.Money(p.UnitPriceTTC()),
		TaxRate:         p.TaxRate.InexactFloat64(),
		IsActive:        p.IsActive,
		IsAvailable:     p.IsAvailable,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		PrepTimeMinutes: p.PrepTimeMinutes,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
