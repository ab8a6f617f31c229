package catalog

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	Create(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogService, error)
	GetByCompany(ctx context.Context, companyID int64, onlyActive bool) ([]domain.CatalogService, error)
	Update(ctx context.Context, service *domain.CatalogService) (*domain.CatalogService, error)
	Deactivate(ctx context.Context, companyID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
