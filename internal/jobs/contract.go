package jobs

import (
	"context"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// BookingRepository контракт хранилища бронирований
type BookingRepository interface {
	GetActiveOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// LoyaltyService контракт сервиса программы лояльности
type LoyaltyService interface {
	AccrueForBooking(ctx context.Context, companyID, clientID, bookingID int64, points int) error
}

// ScheduleCache контракт кэша расписания
type ScheduleCache interface {
	InvalidateSchedule(ctx context.Context, companyID int64, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
