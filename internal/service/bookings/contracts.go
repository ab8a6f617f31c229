package bookings

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
	CountByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// ScheduleCache интерфейс кэша расписания
type ScheduleCache interface {
	InvalidateSchedule(ctx context.Context, companyID int64, date string) error
}

// LoyaltyService интерфейс начисления баллов за завершенные бронирования
type LoyaltyService interface {
	AccrueForBooking(ctx context.Context, companyID, clientID, bookingID int64, points int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
