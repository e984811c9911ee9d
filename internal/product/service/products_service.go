package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
)

type Repository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type ProductService struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger, now: time.Now}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductsByIDs splits ids into the products that exist and the ids that do not.
func (s *ProductService) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, []string, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []string
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest, actor string) (*domain.Product, error) {
	now := s.now().UTC()
	p := &domain.Product{
		ID:          uuid.NewString(),
		IsActive:    true,
		IsAvailable: true,
		CreatedBy:   actor,
		CreatedAt:   now,
	}
	apply(p, req, actor, now)

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product created", zap.String("productId", p.ID), zap.String("name", p.Name), zap.String("actor", actor))
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req dto.ProductRequest, actor string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(p, req, actor, s.now().UTC())

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update product", zap.String("productId", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("product updated", zap.String("productId", id), zap.String("actor", actor))
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("productId", id), zap.String("actor", actor))
	return nil
}

func apply(p *domain.Product, req dto.ProductRequest, actor string, now time.Time) {
	p.Name = req.Name
	p.Description = req.Description
	p.Laboratory = req.Laboratory
	p.Ingredients = req.Ingredients
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	p.UnitPriceHT = req.UnitPriceHT
	p.TaxRate = req.TaxRate
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	p.Category = req.Category
	p.ImageURL = req.ImageURL
	p.PrepTimeMinutes = req.PrepTimeMinutes
	p.UpdatedBy = actor
	p.UpdatedAt = now
}
