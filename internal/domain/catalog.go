package domain

import "time"

// CatalogService услуга из каталога компании
type CatalogService struct {
	ID              int64
	CompanyID       int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToBookingService конвертирует услугу каталога в денормализованную услугу бронирования
func (s *CatalogService) ToBookingService() BookingService {
	return BookingService{
		ServiceID:       s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}
