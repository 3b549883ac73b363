package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken token is malformed, unsigned, or carries bad claims
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken token signature is fine but the token has expired
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload issued by this backend
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
}

// Manager issues and verifies HMAC-signed access/refresh tokens
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
	refreshIn time.Duration
}

// NewManager creates a token manager.
// expiresIn/refreshIn are in minutes.
func NewManager(secret string, expiresIn, refreshIn int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresIn) * time.Minute,
		refreshIn: time.Duration(refreshIn) * time.Minute,
	}
}

// GenerateToken issues a short-lived access token
func (m *Manager) GenerateToken(userID uint64, username, nickname string, level int) (string, error) {
	return m.generate(userID, username, nickname, level, m.expiresIn)
}

// GenerateRefreshToken issues a long-lived refresh token
func (m *Manager) GenerateRefreshToken(userID uint64, username, nickname string, level int) (string, error) {
	return m.generate(userID, username, nickname, level, m.refreshIn)
}

func (m *Manager) generate(userID uint64, username, nickname string, level int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "evigdia-backend",
		},
		UserID:   userID,
		Username: username,
		Nickname: nickname,
		Level:    level,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
