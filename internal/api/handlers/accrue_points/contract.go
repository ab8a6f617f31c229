package accrue_points

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

// LoyaltyService контракт сервиса программы лояльности
type LoyaltyService interface {
	Accrue(ctx context.Context, req *models.AccrueRequest) (*models.BalanceResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
