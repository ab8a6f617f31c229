package domain

import "time"

// Vehicle автомобиль клиента
type Vehicle struct {
	ID        int64
	CompanyID int64
	ClientID  int64
	Plate     string
	Brand     string
	Model     string
	Year      *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleSearchResult результат поиска автомобиля для бронирования
// Содержит данные клиента, чтобы форма бронирования заполнялась одним запросом
type VehicleSearchResult struct {
	Vehicle     Vehicle
	ClientName  string
	ClientPhone string
}
