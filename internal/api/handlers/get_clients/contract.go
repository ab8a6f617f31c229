package get_clients

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/clients/models"
)

// ClientsService контракт сервиса клиентов
type ClientsService interface {
	List(ctx context.Context, req *models.ListClientsRequest) (*models.ClientListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
