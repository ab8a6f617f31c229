package get_service

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

// CatalogService контракт сервиса каталога услуг
type CatalogService interface {
	Get(ctx context.Context, companyID, serviceID int64) (*models.ServiceResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
