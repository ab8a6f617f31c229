package create_booking

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	createBooking "github.com/avlebedev/carservice-admin/internal/usecase/create_booking"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID    int64   `json:"clientId"`
	VehicleID   int64   `json:"vehicleId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingServicePayload услуга в составе ответа
type BookingServicePayload struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                   `json:"id"`
	ClientID        int64                   `json:"clientId"`
	VehicleID       int64                   `json:"vehicleId"`
	BookingDate     string                  `json:"bookingDate"`
	StartTime       string                  `json:"startTime"`
	EndTime         string                  `json:"endTime"`
	ScheduledAt     string                  `json:"scheduledAt"` // ISO 8601 с явным смещением
	DurationMinutes int                     `json:"durationMinutes"`
	Services        []BookingServicePayload `json:"services"`
	TotalPrice      float64                 `json:"totalPrice"`
	Status          string                  `json:"status"`
	ClientName      string                  `json:"clientName"`
	ClientPhone     string                  `json:"clientPhone"`
	VehiclePlate    string                  `json:"vehiclePlate"`
	Notes           *string                 `json:"notes,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(companyID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Время может прийти как "HH:MM" или полной меткой времени
	startTime, err := types.ExtractTimeOfDay(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CompanyID:  companyID,
		ClientID:   r.ClientID,
		VehicleID:  r.VehicleID,
		ServiceIDs: r.ServiceIDs,
		Date:       bookingDate,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]BookingServicePayload, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = BookingServicePayload{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		VehicleID:       resp.VehicleID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		ScheduledAt:     resp.ScheduledAt,
		DurationMinutes: resp.DurationMinutes,
		Services:        services,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		ClientPhone:     resp.ClientPhone,
		VehiclePlate:    resp.VehiclePlate,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
