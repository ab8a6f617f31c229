package create_service

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

// CatalogService контракт сервиса каталога услуг
type CatalogService interface {
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
