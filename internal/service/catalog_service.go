package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/cache"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	homeCacheKey     = "catalog:home"
	homeSectionLimit = 4
)

// HomeView is the product selection shown on the landing page.
type HomeView struct {
	Featured []model.Product `json:"featured_products"`
	Newest   []model.Product `json:"new_arrivals"`
}

// CatalogService exposes read-only catalog queries.
type CatalogService interface {
	Home(ctx context.Context) (*HomeView, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	repo  repository.ProductRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewCatalogService creates a new catalog service. A nil cache disables caching.
func NewCatalogService(repo repository.ProductRepository, cache *cache.Client, ttl time.Duration) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// Home returns the featured and newest products with caching.
func (s *catalogService) Home(ctx context.Context) (*HomeView, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, homeCacheKey); data != nil {
		var cached HomeView
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	featured, err := s.repo.ListOldest(ctx, homeSectionLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	newest, err := s.repo.ListNewest(ctx, homeSectionLimit)
	if err != nil {
		return nil, fmt.Errorf("list new products: %w", err)
	}

	view := &HomeView{Featured: featured, Newest: newest}
	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, homeCacheKey, payload, s.ttl)
	}
	return view, nil
}

// GetProduct retrieves a single product.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}
