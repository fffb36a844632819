package router

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, remember bool) (string, *auth.Session, error) {
	args := m.Called(ctx, email, password, remember)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*auth.Session), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Home(ctx context.Context) (*service.HomeView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HomeView), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, accountID, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, accountID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartService) Adjust(ctx context.Context, accountID, productID uuid.UUID, delta int) error {
	args := m.Called(ctx, accountID, productID, delta)
	return args.Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, accountID, productID uuid.UUID) error {
	args := m.Called(ctx, accountID, productID)
	return args.Error(0)
}

func (m *MockCartService) List(ctx context.Context, accountID uuid.UUID) ([]model.CartItem, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartService) Total(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, accountID uuid.UUID, in service.CheckoutInput) (*model.Order, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, accountID, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, accountID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) LatestOrder(ctx context.Context, accountID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// fakeResolver maps cookie tokens to live sessions.
type fakeResolver map[string]*auth.Session

func (f fakeResolver) Resolve(ctx context.Context, token string) (*auth.Session, error) {
	session, ok := f[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return session, nil
}
