package domain

import "time"

// Client клиент автосервиса
type Client struct {
	ID            int64
	CompanyID     int64
	Name          string
	Phone         string
	Email         *string
	LoyaltyPoints int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientsFilter фильтр для списка клиентов
type ClientsFilter struct {
	CompanyID int64
	Query     string // Поиск по имени или телефону
	Page      int
	Limit     int
}

// Offset вычисляет смещение для пагинации
func (f *ClientsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageLimit()
}

// PageLimit возвращает размер страницы с учетом дефолта и максимума
func (f *ClientsFilter) PageLimit() int {
	if f.Limit <= 0 {
		return DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return f.Limit
}
