package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	cookies     CookieConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Remember string `form:"remember"`
	Next     string `form:"next"`
}

func (r LoginRequest) rememberMe() bool {
	switch strings.ToLower(r.Remember) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// FormView is the view model of the login and registration pages.
type FormView struct {
	Flashes []Flash `json:"flashes"`
	Next    string  `json:"next,omitempty"`
}

// RegisterForm godoc
// @Summary Registration page view model
// @Tags auth
// @Produce json
// @Success 200 {object} FormView
// @Router /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormView{Flashes: PopFlashes(c)})
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param confirm_password formData string true "Password confirmation"
// @Success 303 "Redirect to /login, or back to /register with a flash"
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		AddFlash(c, FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	_, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return redirectWithError(c, err, "/register")
	}

	AddFlash(c, FlashSuccess, "Registration successful! Please login.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm godoc
// @Summary Login page view model
// @Tags auth
// @Produce json
// @Param next query string false "Local path to return to after login"
// @Success 200 {object} FormView
// @Router /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, FormView{
		Flashes: PopFlashes(c),
		Next:    safeNext(c.QueryParam("next")),
	})
}

// Login godoc
// @Summary Log in and establish a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param remember formData string false "Keep the session after the browser closes"
// @Param next formData string false "Local path to return to after login"
// @Success 303 "Redirect to next or /, or back to /login with a flash"
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		AddFlash(c, FlashDanger, "Invalid form submission")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if req.Next == "" {
		req.Next = c.QueryParam("next")
	}
	next := safeNext(req.Next)

	loginURL := "/login"
	if next != "" {
		loginURL += "?next=" + url.QueryEscape(next)
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		AddFlash(c, FlashDanger, "Please fill in all fields")
		return c.Redirect(http.StatusSeeOther, loginURL)
	}

	token, session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.rememberMe())
	if err != nil {
		return redirectWithError(c, err, loginURL)
	}

	setSessionCookie(c, token, session, h.cookies)
	AddFlash(c, FlashSuccess, "Logged in successfully!")
	if next == "" {
		next = "/"
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout godoc
// @Summary Terminate the current session
// @Tags auth
// @Success 303 "Redirect to /"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Warnf("logout: %v", err)
		}
	}
	clearSessionCookie(c)
	AddFlash(c, FlashSuccess, "Logged out successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}
