package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// OrderPlacedEvent is the payload published after an order commits.
type OrderPlacedEvent struct {
	Event     string          `json:"event"`
	OrderID   uuid.UUID       `json:"order_id"`
	AccountID uuid.UUID       `json:"account_id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	PlacedAt  time.Time       `json:"placed_at"`
}

const orderPlacedEvent = "order.placed"

// EventPublisher delivers domain events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// CheckoutInput is the shipping and payment information submitted at checkout.
type CheckoutInput struct {
	Name          string `validate:"required"`
	Email         string `validate:"required,email"`
	Address       string `validate:"required"`
	City          string `validate:"required"`
	State         string `validate:"required"`
	Zip           string `validate:"required"`
	PaymentMethod string `validate:"required"`
}

// OrderService turns carts into orders and looks orders up.
type OrderService interface {
	PlaceOrder(ctx context.Context, accountID uuid.UUID, in CheckoutInput) (*model.Order, error)
	GetOrder(ctx context.Context, accountID, orderID uuid.UUID) (*model.Order, error)
	LatestOrder(ctx context.Context, accountID uuid.UUID) (*model.Order, error)
}

type orderService struct {
	tx        repository.Transactor
	orderRepo repository.OrderRepository
	events    EventPublisher
	queue     string
	validate  *validator.Validate
	now       func() time.Time
	// Mutex map for per-account locking
	accountMutexes sync.Map
}

// NewOrderService creates a new order service. events may be nil.
func NewOrderService(tx repository.Transactor, orderRepo repository.OrderRepository, events EventPublisher, queue string) OrderService {
	return &orderService{
		tx:        tx,
		orderRepo: orderRepo,
		events:    events,
		queue:     queue,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// getMutex returns a mutex for a specific account ID.
func (s *orderService) getMutex(accountID uuid.UUID) *sync.Mutex {
	key := accountID.String()
	value, _ := s.accountMutexes.LoadOrStore(key, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// PlaceOrder snapshots the cart at current prices into a pending order and clears the cart.
// Everything happens in one transaction holding the account row lock.
func (s *orderService) PlaceOrder(ctx context.Context, accountID uuid.UUID, in CheckoutInput) (*model.Order, error) {
	in = trimCheckout(in)
	if err := s.validateCheckout(in); err != nil {
		return nil, err
	}

	mutex := s.getMutex(accountID)
	mutex.Lock()
	defer mutex.Unlock()

	var order *model.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Accounts.FindByIDForUpdate(ctx, accountID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrUnauthenticated
			}
			return fmt.Errorf("lock account: %w", err)
		}

		items, err := joinCart(ctx, repos.Cart, repos.Products, accountID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.ErrEmptyCart
		}

		placed := &model.Order{
			AccountID: accountID,
			Shipping: model.ShippingInfo{
				Name:    in.Name,
				Email:   in.Email,
				Address: in.Address,
				City:    in.City,
				State:   in.State,
				Zip:     in.Zip,
			},
			PaymentMethod: in.PaymentMethod,
			Total:         model.CartTotal(items),
			Status:        model.OrderStatusPending,
			PlacedAt:      s.now().UTC(),
			Items:         make([]model.OrderItem, 0, len(items)),
		}
		for _, item := range items {
			placed.Items = append(placed.Items, model.SnapshotItem(item))
		}

		if err := repos.Orders.Create(ctx, placed); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if _, err := repos.Cart.DeleteByAccount(ctx, accountID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if err := repos.Accounts.RecordOrder(ctx, accountID, placed.Total); err != nil {
			return fmt.Errorf("update account stats: %w", err)
		}

		order = placed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishPlaced(ctx, order)
	return order, nil
}

func trimCheckout(in CheckoutInput) CheckoutInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Zip = strings.TrimSpace(in.Zip)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	return in
}

func (s *orderService) validateCheckout(in CheckoutInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "email" {
			return errors.NewValidationError("email", "Invalid email format")
		}
		return errors.NewValidationError(strings.ToLower(fe.Field()), "Please fill in all shipping and payment fields")
	}
	return fmt.Errorf("validate checkout: %w", err)
}

// publishPlaced is best-effort: the order is already committed.
func (s *orderService) publishPlaced(ctx context.Context, order *model.Order) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(OrderPlacedEvent{
		Event:     orderPlacedEvent,
		OrderID:   order.ID,
		AccountID: order.AccountID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		PlacedAt:  order.PlacedAt,
	})
	if err != nil {
		log.Printf("marshal %s event for order %s: %v", orderPlacedEvent, order.ID, err)
		return
	}
	if _, err := s.events.Publish(ctx, s.queue, payload, map[string]string{"event": orderPlacedEvent}); err != nil {
		log.Printf("publish %s event for order %s: %v", orderPlacedEvent, order.ID, err)
	}
}

// GetOrder returns an order owned by accountID.
func (s *orderService) GetOrder(ctx context.Context, accountID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDForAccount(ctx, orderID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// LatestOrder returns the most recent order of accountID.
func (s *orderService) LatestOrder(ctx context.Context, accountID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindLatestByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("latest order: %w", err)
	}
	return order, nil
}
