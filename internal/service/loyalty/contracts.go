package loyalty

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// LoyaltyRepository интерфейс репозитория движений баллов
type LoyaltyRepository interface {
	Create(ctx context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error)
	GetByClient(ctx context.Context, clientID int64, limit int) ([]domain.LoyaltyTransaction, error)
	ExistsForBooking(ctx context.Context, bookingID int64, reason domain.LoyaltyReason) (bool, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	UpdateLoyaltyPoints(ctx context.Context, clientID int64, delta int) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
