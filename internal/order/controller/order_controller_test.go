package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
	"bakerydash/internal/testutil"
)

type mockOrderService struct {
	ListFunc         func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetFunc          func(ctx context.Context, id string) (*domain.Order, error)
	CreateFunc       func(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error)
}

func (m *mockOrderService) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockOrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockOrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error) {
	return m.UpdateStatusFunc(ctx, id, to, notes)
}

func newOrderRouter(svc OrderService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/orders", NewOrderController(svc, zap.NewNop()).Routes)
	return r
}

func pendingOrder() domain.Order {
	return testutil.Order("ord-1", "Boulangerie Saint-Michel", domain.OrderStatusPending,
		testutil.LineItem("Croissant", 12, "0.90", "0.10"),
		testutil.LineItem("Baguette", 20, "1.10", "0.055"),
	)
}

func TestOrderList(t *testing.T) {
	var got domain.OrderFilter
	svc := &mockOrderService{
		ListFunc: func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
			got = filter
			return []domain.Order{pendingOrder()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=pending&bakery=Boulangerie+Saint-Michel", nil)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	assert.Equal(t, "Boulangerie Saint-Michel", got.BakeryName)

	var body dto.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, 32.8, body.Orders[0].TotalHT)
	assert.Equal(t, 2.29, body.Orders[0].TotalTVA)
	assert.Equal(t, 35.09, body.Orders[0].TotalTTC)
	assert.Len(t, body.Orders[0].Items, 2)
}

func TestOrderList_InvalidStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=baked", nil)
	rec := httptest.NewRecorder()
	newOrderRouter(&mockOrderService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderGet_NotFound(t *testing.T) {
	svc := &mockOrderService{
		GetFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("order with id " + id + " not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ord-404", nil)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ord-404")
}

func TestOrderCreate(t *testing.T) {
	svc := &mockOrderService{
		CreateFunc: func(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
			assert.Equal(t, "Boulangerie Saint-Michel", req.BakeryName)
			require.Len(t, req.Items, 1)
			assert.Equal(t, 12, req.Items[0].Quantity)
			o := pendingOrder()
			return &o, nil
		},
	}

	body := `{"bakeryName":"Boulangerie Saint-Michel","scheduledDate":"2026-03-02T06:00:00Z","items":[{"productId":"prd-1","quantity":12}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
}

func TestOrderCreate_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "missing everything",
			body:       `{}`,
			wantFields: []string{"bakeryName", "scheduledDate", "items"},
		},
		{
			name:       "bad items",
			body:       `{"bakeryName":"B","scheduledDate":"2026-03-02T06:00:00Z","items":[{"productId":"p","quantity":0},{"productId":"p","quantity":1},{"quantity":20000}]}`,
			wantFields: []string{"items[0].quantity", "items[1].productId", "items[2].productId", "items[2].quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newOrderRouter(&mockOrderService{}).ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Details []apperrors.ValidationDetail `json:"details"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			fields := make([]string, len(resp.Details))
			for i, d := range resp.Details {
				fields[i] = d.Field
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	svc := &mockOrderService{
		UpdateStatusFunc: func(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error) {
			assert.Equal(t, "ord-1", id)
			assert.Equal(t, domain.OrderStatusInProgress, to)
			require.NotNil(t, notes)
			assert.Equal(t, "fournée de 5h", *notes)
			o := pendingOrder()
			o.Status = to
			return &o, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/ord-1/status", strings.NewReader(`{"status":"in_progress","notes":"fournée de 5h"}`))
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"IN_PROGRESS"`)
}

func TestOrderUpdateStatus_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing status", `{}`, nil, http.StatusBadRequest},
		{"invalid json", `{`, nil, http.StatusBadRequest},
		{"forbidden transition", `{"status":"DELIVERED"}`, apperrors.NewConflictError("order ord-1 cannot move from PENDING to DELIVERED"), http.StatusConflict},
		{"unknown status", `{"status":"BAKED"}`, apperrors.NewValidationError("invalid status"), http.StatusBadRequest},
		{"missing order", `{"status":"CANCELLED"}`, apperrors.NewNotFoundError("order with id ord-1 not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderService{
				UpdateStatusFunc: func(ctx context.Context, id string, to domain.OrderStatus, notes *string) (*domain.Order, error) {
					return nil, tt.err
				},
			}

			req := httptest.NewRequest(http.MethodPatch, "/api/orders/ord-1/status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newOrderRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
