package get_loyalty_history

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

// LoyaltyService контракт сервиса программы лояльности
type LoyaltyService interface {
	History(ctx context.Context, companyID, clientID int64) (*models.HistoryResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
