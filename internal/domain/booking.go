package domain

import (
	"time"

	"github.com/avlebedev/carservice-admin/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// BookingService услуга в составе бронирования (денормализована для истории)
type BookingService struct {
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
}

// Booking represents a service booking in the system
// Одно бронирование может включать несколько услуг; суммарная длительность
// определяет, сколько слотов расписания оно занимает
type Booking struct {
	ID        int64
	CompanyID int64
	ClientID  int64
	VehicleID int64

	BookingDate time.Time
	StartTime   types.TimeString
	Services    []BookingService
	Status      BookingStatus

	// Denormalized data for history
	ClientName   string
	ClientPhone  string
	VehiclePlate string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDurationMinutes суммарная длительность всех услуг бронирования
func (b *Booking) TotalDurationMinutes() int {
	total := 0
	for _, s := range b.Services {
		total += s.DurationMinutes
	}
	return total
}

// ServiceNames возвращает названия услуг бронирования
func (b *Booking) ServiceNames() []string {
	names := make([]string, len(b.Services))
	for i, s := range b.Services {
		names[i] = s.Name
	}
	return names
}

// TotalPrice суммарная стоимость услуг бронирования
func (b *Booking) TotalPrice() float64 {
	total := 0.0
	for _, s := range b.Services {
		total += s.Price
	}
	return total
}

// IsActive returns true if the booking occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be updated
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// EndTime время окончания бронирования (начало + суммарная длительность)
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.TotalDurationMinutes())
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID       int64          // Обязательный параметр
	ClientID        *int64         // Фильтр по клиенту (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
	Page            int            // Номер страницы (с 1)
	Limit           int            // Размер страницы
}

// Offset вычисляет смещение для пагинации
func (f *CompanyBookingsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageLimit()
}

// PageLimit возвращает размер страницы с учетом дефолта и максимума
func (f *CompanyBookingsFilter) PageLimit() int {
	if f.Limit <= 0 {
		return DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return f.Limit
}
