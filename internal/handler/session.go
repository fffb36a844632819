package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "storefront_session"
	sessionContextKey = "session"
)

// SessionResolver turns a cookie token into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// CookieConfig controls the attributes of cookies set by handlers.
type CookieConfig struct {
	Secure bool
}

// RequireSession rejects requests without a live session by redirecting to the login page.
func RequireSession(resolver SessionResolver) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ContextKey:  sessionContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			session, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			return session, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if _, cookieErr := c.Cookie(SessionCookieName); cookieErr == nil {
				clearSessionCookie(c)
			}
			return redirectToLogin(c)
		},
	})
}

// SessionFromContext returns the session attached by RequireSession, or nil.
func SessionFromContext(c echo.Context) *auth.Session {
	session, _ := c.Get(sessionContextKey).(*auth.Session)
	return session
}

func redirectToLogin(c echo.Context) error {
	AddFlash(c, FlashWarning, "Please login first!")
	target := "/login"
	if c.Request().Method == http.MethodGet {
		target += "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// safeNext returns next if it is a local path, otherwise "".
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}

// setSessionCookie binds the token to the browser. Remembered sessions persist until
// they expire; others end with the browser session.
func setSessionCookie(c echo.Context, token string, session *auth.Session, cfg CookieConfig) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if session.Remember {
		cookie.MaxAge = int(time.Until(session.ExpiresAt).Seconds())
		cookie.Expires = session.ExpiresAt
	}
	c.SetCookie(cookie)
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionUser is the identity exposed to views.
type sessionUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func currentUser(c echo.Context) *sessionUser {
	session := SessionFromContext(c)
	if session == nil {
		return nil
	}
	return &sessionUser{Username: session.Username, Email: session.Email}
}
