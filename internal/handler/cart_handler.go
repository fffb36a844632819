package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// CartHandler handles cart endpoints. Every route requires a session.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartView is the cart page view model.
type CartView struct {
	User      *sessionUser     `json:"user"`
	CartItems []model.CartItem `json:"cart_items"`
	Total     string           `json:"total"`
	Flashes   []Flash          `json:"flashes"`
}

// ViewCart godoc
// @Summary Cart view model with running total
// @Tags cart
// @Produce json
// @Success 200 {object} CartView
// @Success 303 "Redirect to /login when no session"
// @Router /cart [get]
func (h *CartHandler) ViewCart(c echo.Context) error {
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

// AddToCart godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept x-www-form-urlencoded
// @Param product_id path string true "Product ID"
// @Param quantity formData int false "Quantity (default 1)"
// @Success 303 "Redirect to /cart"
// @Router /add_to_cart/{product_id} [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return redirectWithError(c, err, "/cart")
	}
	quantity, err := formInt(c, "quantity", 1)
	if err != nil {
		return redirectWithError(c, err, "/cart")
	}

	if err := h.cartService.Add(c.Request().Context(), SessionFromContext(c).AccountID, productID, quantity); err != nil {
		return redirectWithError(c, err, "/cart")
	}

	AddFlash(c, FlashSuccess, "Product added to cart successfully!")
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// UpdateCart godoc
// @Summary Change the quantity of a cart line
// @Tags cart
// @Accept x-www-form-urlencoded
// @Param product_id path string true "Product ID"
// @Param quantity_change formData int true "Signed quantity delta"
// @Success 303 "Redirect to /cart"
// @Router /update_cart/{product_id} [post]
func (h *CartHandler) UpdateCart(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return redirectWithError(c, err, "/cart")
	}
	delta, err := formInt(c, "quantity_change", 0)
	if err != nil {
		return redirectWithError(c, err, "/cart")
	}

	if err := h.cartService.Adjust(c.Request().Context(), SessionFromContext(c).AccountID, productID, delta); err != nil {
		return redirectWithError(c, err, "/cart")
	}

	return c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveFromCart godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Param product_id path string true "Product ID"
// @Success 303 "Redirect to /cart"
// @Router /remove_from_cart/{product_id} [post]
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	productID, err := parseProductID(c)
	if err != nil {
		return redirectWithError(c, err, "/cart")
	}

	if err := h.cartService.Remove(c.Request().Context(), SessionFromContext(c).AccountID, productID); err != nil {
		return redirectWithError(c, err, "/cart")
	}

	AddFlash(c, FlashSuccess, "Item removed from cart")
	return c.Redirect(http.StatusSeeOther, "/cart")
}

// formInt reads an integer form field, falling back to def when it is absent.
func formInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, "Quantity must be a whole number")
	}
	return v, nil
}
