package get_vehicles

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

// VehiclesService контракт сервиса автомобилей
type VehiclesService interface {
	ListByClient(ctx context.Context, companyID, clientID int64) (*models.VehicleListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
