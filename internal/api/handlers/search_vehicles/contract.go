package search_vehicles

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

type VehiclesService interface {
	Search(ctx context.Context, req *models.SearchVehiclesRequest) (*models.VehicleSearchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
