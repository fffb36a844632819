package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Flash categories.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const (
	flashCookieName = "storefront_flash"
	flashPendingKey = "flash.pending"
	flashKeyKey     = "flash.key"
	flashTTL        = 5 * time.Minute
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// FlashSigner makes key available to AddFlash and PopFlashes, which keep flashes in an
// HS256-signed cookie.
func FlashSigner(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(flashKeyKey, key)
			return next(c)
		}
	}
}

func flashKey(c echo.Context) []byte {
	key, _ := c.Get(flashKeyKey).([]byte)
	return key
}

// AddFlash queues a message for the next request. Without a signing key the message is dropped.
func AddFlash(c echo.Context, category, message string) {
	pending, _ := c.Get(flashPendingKey).([]Flash)
	pending = append(pending, Flash{Category: category, Message: message})
	c.Set(flashPendingKey, pending)

	key := flashKey(c)
	if len(key) == 0 {
		c.Logger().Warn("flash signing key not configured")
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		Flashes: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(flashTTL)),
		},
	})
	value, err := token.SignedString(key)
	if err != nil {
		c.Logger().Errorf("sign flash: %v", err)
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns the messages queued by the previous request and clears them.
// Unsigned, tampered or expired cookies yield no messages.
func PopFlashes(c echo.Context) []Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return []Flash{}
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	key := flashKey(c)
	if len(key) == 0 {
		return []Flash{}
	}
	var claims flashClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Flashes == nil {
		return []Flash{}
	}
	return claims.Flashes
}
