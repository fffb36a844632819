package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/handler"
)

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// Register wires routes and middleware. flashKey signs the flash cookie.
func Register(e *echo.Echo, sessions handler.SessionResolver, flashKey []byte, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(handler.FlashSigner(flashKey))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", h.Catalog.Home)
	e.GET("/products/:product_id", h.Catalog.GetProduct)
	e.GET("/register", h.Auth.RegisterForm)
	e.POST("/register", h.Auth.Register)
	e.GET("/login", h.Auth.LoginForm)
	e.POST("/login", h.Auth.Login)
	e.GET("/logout", h.Auth.Logout)

	// Session-protected routes
	requireSession := handler.RequireSession(sessions)

	e.GET("/cart", h.Cart.ViewCart, requireSession)
	e.POST("/add_to_cart/:product_id", h.Cart.AddToCart, requireSession)
	e.POST("/update_cart/:product_id", h.Cart.UpdateCart, requireSession)
	e.POST("/remove_from_cart/:product_id", h.Cart.RemoveFromCart, requireSession)

	e.GET("/checkout", h.Checkout.Checkout, requireSession)
	e.POST("/checkout", h.Checkout.PlaceOrder, requireSession)
	e.GET("/order-confirmation", h.Checkout.OrderConfirmation, requireSession)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
