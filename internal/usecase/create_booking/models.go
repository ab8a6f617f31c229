package create_booking

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CompanyID  int64            // ID компании
	ClientID   int64            // ID клиента
	VehicleID  int64            // ID автомобиля
	ServiceIDs []int64          // Услуги из каталога (минимум одна)
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота ("10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// ServicePayload услуга в составе созданного бронирования
type ServicePayload struct {
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	ClientID  int64
	VehicleID int64

	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Services        []ServicePayload
	TotalPrice      float64
	Status          string

	// ScheduledAt момент начала с явным смещением часового пояса
	ScheduledAt string

	// Денормализованные данные
	ClientName   string
	ClientPhone  string
	VehiclePlate string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func buildResponse(booking *domain.Booking) *Response {
	services := make([]ServicePayload, len(booking.Services))
	for i, s := range booking.Services {
		services[i] = ServicePayload{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	resp := &Response{
		ID:              booking.ID,
		ClientID:        booking.ClientID,
		VehicleID:       booking.VehicleID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.TotalDurationMinutes(),
		Services:        services,
		TotalPrice:      booking.TotalPrice(),
		Status:          string(booking.Status),
		ClientName:      booking.ClientName,
		ClientPhone:     booking.ClientPhone,
		VehiclePlate:    booking.VehiclePlate,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if end, err := booking.EndTime(); err == nil {
		resp.EndTime = end
	}

	resp.ScheduledAt = scheduledAt(booking.BookingDate, booking.StartTime)

	return resp
}

// scheduledAt собирает момент начала в локальном времени с явным смещением
// UTC здесь не используется: дата и время слота всегда локальны для сервиса
func scheduledAt(date time.Time, start types.TimeString) string {
	minutes, err := start.Minutes()
	if err != nil {
		return ""
	}

	local := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local).
		Add(time.Duration(minutes) * time.Minute)

	return local.Format(domain.LocalISOFormat)
}
