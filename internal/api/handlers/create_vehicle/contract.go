package create_vehicle

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

type VehiclesService interface {
	Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.VehicleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
