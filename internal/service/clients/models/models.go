package models

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// Request модели

// CreateClientRequest запрос на создание клиента
type CreateClientRequest struct {
	CompanyID int64   `json:"-"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// UpdateClientRequest запрос на обновление клиента
type UpdateClientRequest struct {
	CompanyID int64   `json:"-"`
	ClientID  int64   `json:"-"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// ListClientsRequest запрос на список клиентов с поиском
type ListClientsRequest struct {
	CompanyID int64  `json:"-"`
	Query     string `json:"query,omitempty"` // Поиск по имени или телефону
	Page      int    `json:"page,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListClientsRequest) ToDomainFilter() domain.ClientsFilter {
	return domain.ClientsFilter{
		CompanyID: r.CompanyID,
		Query:     r.Query,
		Page:      r.Page,
		Limit:     r.Limit,
	}
}

// Response модели

// VehicleResponse автомобиль в составе карточки клиента
type VehicleResponse struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  *int   `json:"year,omitempty"`
}

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Email         *string           `json:"email,omitempty"`
	LoyaltyPoints int               `json:"loyaltyPoints"`
	Vehicles      []VehicleResponse `json:"vehicles,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ClientListResponse ответ со списком клиентов и пагинацией
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// Методы конвертации

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	return &ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// FromDomainVehicles конвертирует автомобили клиента в DTO
func FromDomainVehicles(vehicles []domain.Vehicle) []VehicleResponse {
	resp := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = VehicleResponse{
			ID:    v.ID,
			Plate: v.Plate,
			Brand: v.Brand,
			Model: v.Model,
			Year:  v.Year,
		}
	}
	return resp
}
