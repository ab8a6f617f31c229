package update_booking_status

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
