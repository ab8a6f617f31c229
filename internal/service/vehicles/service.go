package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avlebedev/carservice-admin/internal/domain"
	clientRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/client"
	vehicleRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/vehicle"
	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

// Ограничение на размер выдачи поиска
const defaultSearchLimit = 10

// Service сервис для работы с автомобилями
type Service struct {
	vehicleRepo VehicleRepository
	clientRepo  ClientRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(vehicleRepo VehicleRepository, clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// Create создает автомобиль клиента
func (s *Service) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Create: creating vehicle for client=%d, company=%d", req.ClientID, req.CompanyID)

	if strings.TrimSpace(req.Plate) == "" {
		s.logger.Warn("Create: empty plate for client=%d", req.ClientID)
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}

	// Проверяем, что владелец существует и принадлежит компании
	owner, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Create: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Create: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Create - failed to get client: %v", ErrInternal, err)
	}
	if owner.CompanyID != req.CompanyID {
		s.logger.Warn("Create: client id=%d belongs to another company", req.ClientID)
		return nil, ErrAccessDenied
	}

	vehicle := &domain.Vehicle{
		CompanyID: req.CompanyID,
		ClientID:  req.ClientID,
		Plate:     normalizePlate(req.Plate),
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Year:      req.Year,
	}

	created, err := s.vehicleRepo.Create(ctx, vehicle)
	if err != nil {
		s.logger.Error("Create: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created vehicle id=%d plate=%s", created.ID, created.Plate)
	return models.FromDomainVehicle(created), nil
}

// GetByID получает автомобиль компании по ID
func (s *Service) GetByID(ctx context.Context, companyID, vehicleID int64) (*models.VehicleResponse, error) {
	vehicle, err := s.getCompanyVehicle(ctx, companyID, vehicleID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainVehicle(vehicle), nil
}

// ListByClient возвращает автомобили клиента компании
func (s *Service) ListByClient(ctx context.Context, companyID, clientID int64) (*models.VehicleListResponse, error) {
	owner, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("ListByClient: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("ListByClient: failed to get client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - failed to get client: %v", ErrInternal, err)
	}
	if owner.CompanyID != companyID {
		s.logger.Warn("ListByClient: client id=%d belongs to another company", clientID)
		return nil, ErrAccessDenied
	}

	vehicles, err := s.vehicleRepo.GetByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicles(vehicles), nil
}

// Search ищет автомобили по части госномера для формы бронирования
func (s *Service) Search(ctx context.Context, req *models.SearchVehiclesRequest) (*models.VehicleSearchResponse, error) {
	query := normalizePlate(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}

	limit := req.Limit
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	results, err := s.vehicleRepo.SearchForBooking(ctx, req.CompanyID, query, limit)
	if err != nil {
		s.logger.Error("Search: repository error for company=%d query=%s: %v", req.CompanyID, query, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSearchResults(results), nil
}

// Update обновляет данные автомобиля
func (s *Service) Update(ctx context.Context, req *models.UpdateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Update: updating vehicle id=%d for company=%d", req.VehicleID, req.CompanyID)

	if strings.TrimSpace(req.Plate) == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}

	vehicle := &domain.Vehicle{
		ID:        req.VehicleID,
		CompanyID: req.CompanyID,
		Plate:     normalizePlate(req.Plate),
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Year:      req.Year,
	}

	updated, err := s.vehicleRepo.Update(ctx, vehicle)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Update: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Update: repository error for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated vehicle id=%d", req.VehicleID)
	return models.FromDomainVehicle(updated), nil
}

// Delete удаляет автомобиль компании
func (s *Service) Delete(ctx context.Context, companyID, vehicleID int64) error {
	s.logger.Info("Delete: deleting vehicle id=%d for company=%d", vehicleID, companyID)

	if err := s.vehicleRepo.Delete(ctx, companyID, vehicleID); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Delete: vehicle id=%d not found", vehicleID)
			return ErrVehicleNotFound
		}
		s.logger.Error("Delete: repository error for vehicle=%d: %v", vehicleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted vehicle id=%d", vehicleID)
	return nil
}

func (s *Service) getCompanyVehicle(ctx context.Context, companyID, vehicleID int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("getCompanyVehicle: vehicle id=%d not found", vehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("getCompanyVehicle: repository error for vehicle=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if vehicle.CompanyID != companyID {
		s.logger.Warn("getCompanyVehicle: vehicle id=%d belongs to company=%d, requested by company=%d",
			vehicleID, vehicle.CompanyID, companyID)
		return nil, ErrAccessDenied
	}

	return vehicle, nil
}

// normalizePlate приводит госномер к верхнему регистру без пробелов
func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}
