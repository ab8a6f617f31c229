package create_client

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/clients/models"
)

// ClientsService контракт сервиса клиентов
type ClientsService interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
