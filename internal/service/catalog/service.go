package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avlebedev/carservice-admin/internal/domain"
	catalogRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/catalog"
	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create добавляет услугу в каталог компании
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service for company=%d name=%s", req.CompanyID, req.Name)

	if err := validateService(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: validation failed for company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	service := &domain.CatalogService{
		CompanyID:       req.CompanyID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	created, err := s.repo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// List получает услуги компании
// При onlyActive в выдаче только услуги, доступные для записи
func (s *Service) List(ctx context.Context, companyID int64, onlyActive bool) (*models.ServiceListResponse, error) {
	services, err := s.repo.GetByCompany(ctx, companyID, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Get получает услугу компании по ID
func (s *Service) Get(ctx context.Context, companyID, serviceID int64) (*models.ServiceResponse, error) {
	service, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Get: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Get: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if service.CompanyID != companyID {
		s.logger.Warn("Get: service id=%d belongs to company=%d, requested by company=%d",
			serviceID, service.CompanyID, companyID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainService(service), nil
}

// Update обновляет услугу каталога
func (s *Service) Update(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d for company=%d", req.ServiceID, req.CompanyID)

	if err := validateService(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Update: validation failed for service=%d: %v", req.ServiceID, err)
		return nil, err
	}

	service := &domain.CatalogService{
		ID:              req.ServiceID,
		CompanyID:       req.CompanyID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          req.Active,
	}

	updated, err := s.repo.Update(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", req.ServiceID)
	return models.FromDomainService(updated), nil
}

// Deactivate скрывает услугу из каталога
// История бронирований не трогается: услуги в них денормализованы
func (s *Service) Deactivate(ctx context.Context, companyID, serviceID int64) error {
	s.logger.Info("Deactivate: deactivating service id=%d for company=%d", serviceID, companyID)

	if err := s.repo.Deactivate(ctx, companyID, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Deactivate: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("Deactivate: repository error for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated service id=%d", serviceID)
	return nil
}

func validateService(name string, durationMinutes int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if durationMinutes < domain.MinSlotDurationMinutes || durationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
