package clients

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.ClientsFilter) ([]domain.Client, error)
	CountByCompanyWithFilter(ctx context.Context, filter domain.ClientsFilter) (int, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, companyID, id int64) error
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByClient(ctx context.Context, clientID int64) ([]domain.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
