package vehicles

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByClient(ctx context.Context, clientID int64) ([]domain.Vehicle, error)
	SearchForBooking(ctx context.Context, companyID int64, plateQuery string, limit int) ([]domain.VehicleSearchResult, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, companyID, id int64) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
