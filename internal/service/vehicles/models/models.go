package models

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// Request модели

// CreateVehicleRequest запрос на создание автомобиля
type CreateVehicleRequest struct {
	CompanyID int64  `json:"-"`
	ClientID  int64  `json:"clientId"`
	Plate     string `json:"plate"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      *int   `json:"year,omitempty"`
}

// UpdateVehicleRequest запрос на обновление автомобиля
type UpdateVehicleRequest struct {
	CompanyID int64  `json:"-"`
	VehicleID int64  `json:"-"`
	Plate     string `json:"plate"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      *int   `json:"year,omitempty"`
}

// SearchVehiclesRequest запрос поиска автомобиля для формы бронирования
type SearchVehiclesRequest struct {
	CompanyID int64  `json:"-"`
	Query     string `json:"query"` // Часть госномера
	Limit     int    `json:"limit,omitempty"`
}

// Response модели

// VehicleResponse ответ с данными автомобиля
type VehicleResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"clientId"`
	Plate     string    `json:"plate"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleSearchItem результат поиска: автомобиль вместе с владельцем
// Форма создания бронирования заполняется из одного такого элемента
type VehicleSearchItem struct {
	Vehicle     VehicleResponse `json:"vehicle"`
	ClientName  string          `json:"clientName"`
	ClientPhone string          `json:"clientPhone"`
}

// VehicleSearchResponse ответ поиска автомобилей
type VehicleSearchResponse struct {
	Results []VehicleSearchItem `json:"results"`
}

// VehicleListResponse список автомобилей клиента
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// Методы конвертации

// FromDomainVehicle конвертирует domain модель в DTO
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}

	return &VehicleResponse{
		ID:        v.ID,
		ClientID:  v.ClientID,
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainVehicles конвертирует список domain моделей в DTO
func FromDomainVehicles(vehicles []domain.Vehicle) *VehicleListResponse {
	resp := &VehicleListResponse{
		Vehicles: make([]VehicleResponse, len(vehicles)),
	}

	for i := range vehicles {
		resp.Vehicles[i] = *FromDomainVehicle(&vehicles[i])
	}

	return resp
}

// FromDomainSearchResults конвертирует результаты поиска в DTO
func FromDomainSearchResults(results []domain.VehicleSearchResult) *VehicleSearchResponse {
	resp := &VehicleSearchResponse{
		Results: make([]VehicleSearchItem, len(results)),
	}

	for i, r := range results {
		resp.Results[i] = VehicleSearchItem{
			Vehicle:     *FromDomainVehicle(&r.Vehicle),
			ClientName:  r.ClientName,
			ClientPhone: r.ClientPhone,
		}
	}

	return resp
}
