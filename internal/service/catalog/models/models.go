package models

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	CompanyID       int64   `json:"-"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// UpdateServiceRequest запрос на обновление услуги каталога
type UpdateServiceRequest struct {
	CompanyID       int64   `json:"-"`
	ServiceID       int64   `json:"-"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.CatalogService) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []domain.CatalogService) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}
	for i := range services {
		resp.Services[i] = *FromDomainService(&services[i])
	}
	return resp
}
