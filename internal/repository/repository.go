package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

var (
	ErrDuplicateUser = errors.New("duplicate user id")
	ErrInvalidUser   = errors.New("invalid user record")
)

// UserRepository интерфейс хранилища учётных записей операторов
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
