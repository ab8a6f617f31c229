package get_schedule

import (
	"context"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
}

// SettingsProvider интерфейс источника настроек компании
type SettingsProvider interface {
	GetDomainSettings(ctx context.Context, companyID int64) (*domain.CompanySettings, error)
}

// ScheduleCache интерфейс кэша расписания
type ScheduleCache interface {
	GetSchedule(ctx context.Context, companyID int64, date string) ([]domain.ScheduleSlot, error)
	SetSchedule(ctx context.Context, companyID int64, date string, slots []domain.ScheduleSlot, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
