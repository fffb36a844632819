package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the signed part of a session cookie.
type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Remember  bool      `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateSessionToken issues a token for a session. The session ID travels as the JWT ID
// so that the server-side record can be found and revoked.
func (s *JWTService) GenerateSessionToken(session *Session) (string, error) {
	claims := &Claims{
		AccountID: session.AccountID,
		Username:  session.Username,
		Email:     session.Email,
		Remember:  session.Remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.AccountID.String(),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithLeeway(5*time.Second))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" {
		return nil, errors.New("token ID not found")
	}

	return claims, nil
}

// generateSessionID generates a unique session identifier.
func generateSessionID() string {
	return uuid.New().String()
}
