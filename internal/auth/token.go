// Package auth выпускает и проверяет сессионные токены операторов.
// Сервер не хранит сессии: токен валиден, пока совпадает подпись и не истёк срок.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingToken       = errors.New("No token provided")
	ErrInvalidToken       = errors.New("Invalid or expired token")
)

// DefaultTTL время жизни токена, если в конфиге ничего не задано
const DefaultTTL = 24 * time.Hour

// Claims полезная нагрузка токена
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type Option func(*TokenManager)

// WithClock подменяет источник времени (нужно в тестах)
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

// TokenManager подписывает и проверяет HS256-токены общим секретом
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue подписывает токен для userID, срок истекает через ttl
func (m *TokenManager) Issue(userID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate возвращает userID из токена. Любая причина отказа (подпись,
// алгоритм, срок) сводится к ErrInvalidToken.
func (m *TokenManager) Validate(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
