package service

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/auth"
	"orderdesk/internal/logger"
	"orderdesk/internal/metrics"
	"orderdesk/internal/repository"
)

// Session выданный оператору токен
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService логин операторов по статическому списку учётных записей
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login проверяет пару id/пароль и выпускает токен
func (s *AuthService) Login(ctx context.Context, id, password string) (*Session, error) {
	if id == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, auth.ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.ComparePassword(u.Password, password) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, auth.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	logger.FromContext(ctx).Info("operator logged in", "action", "login", "user_id", u.ID)
	return &Session{Token: token, UserID: u.ID, ExpiresAt: exp}, nil
}

// Authenticate возвращает id оператора по токену
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.tokens.Validate(token)
}
