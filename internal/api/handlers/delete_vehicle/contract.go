package delete_vehicle

import "context"

// VehiclesService контракт сервиса автомобилей
type VehiclesService interface {
	Delete(ctx context.Context, companyID, vehicleID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
