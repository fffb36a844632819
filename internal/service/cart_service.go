package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// CartService manages the per-account cart ledger.
type CartService interface {
	Add(ctx context.Context, accountID, productID uuid.UUID, quantity int) error
	Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error
	Remove(ctx context.Context, accountID, productID uuid.UUID) error
	List(ctx context.Context, accountID uuid.UUID) ([]model.CartItem, error)
	Total(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add increments the line for productID. Product existence is not checked here;
// dangling lines are dropped when the cart is listed.
func (s *cartService) Add(ctx context.Context, accountID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errors.NewValidationError("quantity", "Quantity must be at least 1")
	}
	if err := s.cartRepo.Increment(ctx, accountID, productID, quantity); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// Adjust changes an existing line by delta, removing it once it drops to zero.
func (s *cartService) Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := s.cartRepo.Adjust(ctx, accountID, productID, delta); err != nil {
		return fmt.Errorf("adjust cart: %w", err)
	}
	return nil
}

// Remove deletes a line.
func (s *cartService) Remove(ctx context.Context, accountID, productID uuid.UUID) error {
	if err := s.cartRepo.Delete(ctx, accountID, productID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

// List returns the cart priced at current catalog prices.
func (s *cartService) List(ctx context.Context, accountID uuid.UUID) ([]model.CartItem, error) {
	return joinCart(ctx, s.cartRepo, s.productRepo, accountID)
}

// Total returns the running total of the cart.
func (s *cartService) Total(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	items, err := s.List(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return model.CartTotal(items), nil
}

// joinCart resolves cart lines against the catalog, keeping line order and
// skipping lines whose product no longer exists.
func joinCart(ctx context.Context, carts repository.CartRepository, products repository.ProductRepository, accountID uuid.UUID) ([]model.CartItem, error) {
	lines, err := carts.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if len(lines) == 0 {
		return []model.CartItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	byID := make(map[uuid.UUID]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]model.CartItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, model.NewCartItem(line, product))
	}
	return items, nil
}
