package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// CheckoutHandler handles checkout and order confirmation. Every route requires a session.
type CheckoutHandler struct {
	cartService  service.CartService
	orderService service.OrderService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(cartService service.CartService, orderService service.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// CheckoutRequest represents the checkout form.
type CheckoutRequest struct {
	Name          string `form:"name"`
	Email         string `form:"email"`
	Address       string `form:"address"`
	City          string `form:"city"`
	State         string `form:"state"`
	Zip           string `form:"zip"`
	PaymentMethod string `form:"payment_method"`
}

// OrderView is the order confirmation view model.
type OrderView struct {
	User    *sessionUser `json:"user"`
	Order   *model.Order `json:"order"`
	Flashes []Flash      `json:"flashes"`
}

// Checkout godoc
// @Summary Checkout summary view model
// @Tags checkout
// @Produce json
// @Success 200 {object} CartView
// @Success 303 "Redirect to /login when no session"
// @Router /checkout [get]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	session := SessionFromContext(c)
	items, err := h.cartService.List(c.Request().Context(), session.AccountID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, CartView{
		User:      currentUser(c),
		CartItems: items,
		Total:     model.CartTotal(items).StringFixed(2),
		Flashes:   PopFlashes(c),
	})
}

// PlaceOrder godoc
// @Summary Place an order from the cart
// @Tags checkout
// @Accept x-www-form-urlencoded
// @Param name formData string true "Recipient name"
// @Param email formData string true "Contact email"
// @Param address formData string true "Street address"
// @Param city formData string true "City"
// @Param state formData string true "State"
// @Param zip formData string true "ZIP code"
// @Param payment_method formData string true "Payment method"
// @Success 303 "Redirect to /order-confirmation, or back with a flash"
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		AddFlash(c, FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/checkout")
	}

	order, err := h.orderService.PlaceOrder(c.Request().Context(), SessionFromContext(c).AccountID, service.CheckoutInput{
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, errors.ErrEmptyCart) {
			return redirectWithError(c, err, "/cart")
		}
		return redirectWithError(c, err, "/checkout")
	}

	AddFlash(c, FlashSuccess, "Order placed successfully!")
	return c.Redirect(http.StatusSeeOther, "/order-confirmation?order_id="+order.ID.String())
}

// OrderConfirmation godoc
// @Summary Order confirmation view model
// @Tags checkout
// @Produce json
// @Param order_id query string false "Order ID; defaults to the latest order"
// @Success 200 {object} OrderView
// @Failure 404 {object} errors.ErrorResponse
// @Router /order-confirmation [get]
func (h *CheckoutHandler) OrderConfirmation(c echo.Context) error {
	ctx := c.Request().Context()
	accountID := SessionFromContext(c).AccountID

	var (
		order *model.Order
		err   error
	)
	if raw := c.QueryParam("order_id"); raw != "" {
		orderID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return jsonError(c, errors.ErrNotFound)
		}
		order, err = h.orderService.GetOrder(ctx, accountID, orderID)
	} else {
		order, err = h.orderService.LatestOrder(ctx, accountID)
	}
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, OrderView{
		User:    currentUser(c),
		Order:   order,
		Flashes: PopFlashes(c),
	})
}
