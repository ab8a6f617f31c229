package auth

import (
	"context"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// UserRepository интерфейс репозитория сотрудников
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenCache интерфейс хранилища отозванных токенов
type TokenCache interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
