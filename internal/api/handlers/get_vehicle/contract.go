package get_vehicle

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

// VehiclesService контракт сервиса автомобилей
type VehiclesService interface {
	GetByID(ctx context.Context, companyID, vehicleID int64) (*models.VehicleResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
