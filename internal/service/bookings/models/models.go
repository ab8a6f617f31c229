package models

import (
	"errors"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CompanyID          int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	CompanyID int64  `json:"-"`
	Status    string `json:"status"`
}

// GetCompanyBookingsRequest запрос на получение бронирований компании
type GetCompanyBookingsRequest struct {
	CompanyID       int64      `json:"-"`
	ClientID        *int64     `json:"clientId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
	Page            int        `json:"page,omitempty"`
	Limit           int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCompanyBookingsRequest) ToDomainFilter() (domain.CompanyBookingsFilter, error) {
	filter := domain.CompanyBookingsFilter{
		CompanyID:       r.CompanyID,
		ClientID:        r.ClientID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
		Page:            r.Page,
		Limit:           r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingServiceResponse услуга в составе бронирования
type BookingServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64 `json:"id"`
	ClientID  int64 `json:"clientId"`
	VehicleID int64 `json:"vehicleId"`

	BookingDate     string                   `json:"bookingDate"` // "2025-10-15"
	StartTime       string                   `json:"startTime"`   // "10:00"
	EndTime         string                   `json:"endTime"`     // "11:30"
	DurationMinutes int                      `json:"durationMinutes"`
	Services        []BookingServiceResponse `json:"services"`
	TotalPrice      float64                  `json:"totalPrice"`
	Status          string                   `json:"status"`

	// Денормализованные данные
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	VehiclePlate string  `json:"vehiclePlate"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований и пагинацией
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	services := make([]BookingServiceResponse, len(b.Services))
	for i, s := range b.Services {
		services[i] = BookingServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		VehicleID:          b.VehicleID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.TotalDurationMinutes(),
		Services:           services,
		TotalPrice:         b.TotalPrice(),
		Status:             string(b.Status),
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		VehiclePlate:       b.VehiclePlate,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
