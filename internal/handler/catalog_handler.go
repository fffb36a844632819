package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// CatalogHandler serves the public product pages.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// HomeView is the landing page view model.
type HomeView struct {
	FeaturedProducts []model.Product `json:"featured_products"`
	NewArrivals      []model.Product `json:"new_arrivals"`
	Flashes          []Flash         `json:"flashes"`
}

// Home godoc
// @Summary Landing page view model
// @Tags catalog
// @Produce json
// @Success 200 {object} HomeView
// @Failure 500 {object} errors.ErrorResponse
// @Router / [get]
func (h *CatalogHandler) Home(c echo.Context) error {
	home, err := h.catalogService.Home(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, HomeView{
		FeaturedProducts: home.Featured,
		NewArrivals:      home.Newest,
		Flashes:          PopFlashes(c),
	})
}

// GetProduct godoc
// @Summary Get a product
// @Tags catalog
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{product_id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return jsonError(c, err)
	}
	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}
