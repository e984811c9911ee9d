package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bakerydash/internal/commons"
	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

const (
	maxOrderItems    = 100
	maxItemQuantity  = 10000
	orderIDParameter = "orderId"
)

type OrderService interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error)
}

type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/{orderId}", c.Get)
	r.Patch("/{orderId}/status", c.UpdateStatus)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	raw := r.URL.Query().Get("status")
	status, ok := domain.ParseStatusFilter(raw, "")
	if !ok {
		commons.WriteValidationError(w, logger, "invalid query parameter", apperrors.ValidationDetail{
			Field:   "status",
			Message: "unknown status " + strings.ToUpper(raw),
		})
		return
	}

	filter := domain.OrderFilter{
		Status:           status,
		BakeryName:       r.URL.Query().Get("bakery"),
		DeliveryPersonID: r.URL.Query().Get("deliveryPersonId"),
	}

	orders, err := c.service.List(r.Context(), filter)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	response := dto.OrderListResponse{
		Orders: make([]dto.OrderDTO, len(orders)),
		Count:  len(orders),
	}
	for i := range orders {
		response.Orders[i] = toOrderDTO(&orders[i])
	}

	commons.WriteJSON(w, logger, http.StatusOK, response)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	order, err := c.service.Get(r.Context(), chi.URLParam(r, orderIDParameter))
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toOrderDTO(order))
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if details := validateCreateOrderRequest(req); len(details) > 0 {
		commons.WriteValidationError(w, logger, "validation failed", details...)
		return
	}

	order, err := c.service.Create(r.Context(), req)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, toOrderDTO(order))
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.Trace(c.logger)
	orderID := chi.URLParam(r, orderIDParameter)

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Status) == "" {
		commons.WriteValidationError(w, logger, "validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	status := domain.OrderStatus(strings.ToUpper(req.Status))
	order, err := c.service.UpdateStatus(r.Context(), orderID, status, req.Notes)
	if err != nil {
		logger.Info("status update rejected", zap.String("orderId", orderID), zap.String("status", req.Status), zap.Error(err))
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, toOrderDTO(order))
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.BakeryName) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "bakeryName",
			Message: "bakeryName is required",
		})
	}

	if req.ScheduledDate.IsZero() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "scheduledDate",
			Message: "scheduledDate is required",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > maxOrderItems {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of " + strconv.Itoa(maxOrderItems),
		})
	}

	seen := make(map[string]bool)
	for idx, item := range req.Items {
		prefix := "items[" + strconv.Itoa(idx) + "]"

		if item.ProductID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId is required",
			})
		} else if seen[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId must not be duplicated",
			})
		}
		seen[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > maxItemQuantity {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".quantity",
				Message: "quantity must be between 1 and " + strconv.Itoa(maxItemQuantity),
			})
		}
	}

	return details
}

func toOrderDTO(o *domain.Order) dto.OrderDTO {
	items := make([]dto.OrderLineItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = dto.OrderLineItemDTO{
			ProductName:  item.ProductName,
			ProductRef:   item.ProductRef,
			Laboratory:   item.Laboratory,
			UnitPriceHT:  dto.Money(item.UnitPriceHT),
			UnitPriceTTC: dto.Money(item.UnitPriceTTC),
			TaxRate:      item.TaxRate.InexactFloat64(),
			Quantity:     item.Quantity,
			TotalHT:      dto.Money(item.TotalHT),
			TotalTVA:     dto.Money(item.TotalTVA),
			TotalTTC:     dto.Money(item.TotalTTC),
		}
	}

	return dto.OrderDTO{
		ID:                 o.ID,
		Reference:          o.Reference,
		BakeryName:         o.BakeryName,
		DeliveryPersonID:   o.DeliveryPersonID,
		DeliveryPersonName: o.DeliveryPersonName,
		ScheduledDate:      o.ScheduledDate,
		DeliveredAt:        o.DeliveredAt,
		Status:             string(o.Status),
		Notes:              o.Notes,
		DeliveryAddress:    o.DeliveryAddress,
		Items:              items,
		TotalHT:            dto.Money(o.TotalHT),
		TotalTVA:           dto.Money(o.TotalTVA),
		TotalTTC:           dto.Money(o.TotalTTC),
	}
}
