package get_services

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

// CatalogService контракт сервиса каталога услуг
type CatalogService interface {
	List(ctx context.Context, companyID int64, onlyActive bool) (*models.ServiceListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
