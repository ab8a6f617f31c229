package redeem_points

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

// LoyaltyService контракт сервиса программы лояльности
type LoyaltyService interface {
	Redeem(ctx context.Context, req *models.RedeemRequest) (*models.BalanceResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
