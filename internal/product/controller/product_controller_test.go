package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	apperrors "bakerydash/internal/errors"
)

type mockProductService struct {
	ListFunc   func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetFunc    func(ctx context.Context, id string) (*domain.Product, error)
	CreateFunc func(ctx context.Context, req dto.ProductRequest, actor string) (*domain.Product, error)
	UpdateFunc func(ctx context.Context, id string, req dto.ProductRequest, actor string) (*domain.Product, error)
	DeleteFunc func(ctx context.Context, id, actor string) error
}

func (m *mockProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockProductService) Create(ctx context.Context, req dto.ProductRequest, actor string) (*domain.Product, error) {
	return m.CreateFunc(ctx, req, actor)
}

func (m *mockProductService) Update(ctx context.Context, id string, req dto.ProductRequest, actor string) (*domain.Product, error) {
	return m.UpdateFunc(ctx, id, req, actor)
}

func (m *mockProductService) Delete(ctx context.Context, id, actor string) error {
	return m.DeleteFunc(ctx, id, actor)
}

func newRouter(svc ProductService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/products", NewController(svc, zap.NewNop()).Routes)
	return r
}

func croissant() *domain.Product {
	return &domain.Product{
		ID:          "prd-1",
		Name:        "Croissant",
		Laboratory:  "Labo Nord",
		Ingredients: []string{"farine", "beurre"},
		UnitPriceHT: decimal.RequireFromString("0.90"),
		TaxRate:     decimal.RequireFromString("0.10"),
		IsActive:    true,
		IsAvailable: true,
	}
}

func TestList_PassesFilter(t *testing.T) {
	var got domain.ProductFilter
	svc := &mockProductService{
		ListFunc: func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
			got = filter
			return []domain.Product{*croissant()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products?laboratory=Labo+Nord&active=true", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Labo Nord", got.Laboratory)
	require.NotNil(t, got.Active)
	assert.True(t, *got.Active)

	var body dto.ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, 0.9, body.Products[0].UnitPriceHT)
	assert.Equal(t, 0.99, body.Products[0].UnitPriceTTC)
}

func TestList_InvalidActive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products?active=maybe", nil)
	rec := httptest.NewRecorder()
	newRouter(&mockProductService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGet_NotFound(t *testing.T) {
	svc := &mockProductService{
		GetFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id " + id + " not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestCreate_UsesActorHeader(t *testing.T) {
	var actor string
	svc := &mockProductService{
		CreateFunc: func(ctx context.Context, req dto.ProductRequest, a string) (*domain.Product, error) {
			actor = a
			assert.True(t, decimal.RequireFromString("0.90").Equal(req.UnitPriceHT))
			return croissant(), nil
		},
	}

	body := `{"name":"Croissant","laboratory":"Labo Nord","unitPriceHT":0.90,"taxRate":0.10}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("X-User", "admin@bakery.test")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin@bakery.test", actor)
}

func TestCreate_ValidationErrors(t *testing.T) {
	body := `{"name":" ","laboratory":"","unitPriceHT":-1,"taxRate":1.5,"prepTimeMinutes":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(&mockProductService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Details []apperrors.ValidationDetail `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	fields := make([]string, len(resp.Details))
	for i, d := range resp.Details {
		fields[i] = d.Field
	}
	assert.Equal(t, []string{"name", "laboratory", "unitPriceHT", "taxRate", "prepTimeMinutes"}, fields)
}

func TestCreate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newRouter(&mockProductService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "request body must be valid JSON")
}

func TestUpdate(t *testing.T) {
	svc := &mockProductService{
		UpdateFunc: func(ctx context.Context, id string, req dto.ProductRequest, actor string) (*domain.Product, error) {
			assert.Equal(t, "prd-1", id)
			assert.Equal(t, "system", actor)
			p := croissant()
			p.Name = req.Name
			return p, nil
		},
	}

	body := `{"name":"Croissant au beurre","laboratory":"Labo Nord","unitPriceHT":"0.95","taxRate":"0.10"}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/prd-1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Croissant au beurre")
}

func TestDelete(t *testing.T) {
	svc := &mockProductService{
		DeleteFunc: func(ctx context.Context, id, actor string) error {
			assert.Equal(t, "prd-1", id)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/products/prd-1", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
