package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avlebedev/carservice-admin/internal/domain"
	clientRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/client"
	"github.com/avlebedev/carservice-admin/internal/service/clients/models"
)

// Service сервис для работы с клиентами
type Service struct {
	clientRepo  ClientRepository
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, vehicleRepo VehicleRepository, logger Logger) *Service {
	return &Service{
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// Create создает нового клиента
func (s *Service) Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Create: creating client for company=%d", req.CompanyID)

	if err := validateNameAndPhone(req.Name, req.Phone); err != nil {
		s.logger.Warn("Create: validation failed for company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	client := &domain.Client{
		CompanyID: req.CompanyID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		s.logger.Error("Create: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created client id=%d for company=%d", created.ID, req.CompanyID)
	return models.FromDomainClient(created), nil
}

// GetByID получает карточку клиента вместе с его автомобилями
func (s *Service) GetByID(ctx context.Context, companyID, clientID int64) (*models.ClientResponse, error) {
	client, err := s.getCompanyClient(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainClient(client)

	vehicles, err := s.vehicleRepo.GetByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetByID: failed to load vehicles for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetByID - failed to load vehicles: %v", ErrInternal, err)
	}
	resp.Vehicles = models.FromDomainVehicles(vehicles)

	return resp, nil
}

// List получает клиентов компании с поиском и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListClientsRequest) (*models.ClientListResponse, error) {
	filter := req.ToDomainFilter()

	clients, err := s.clientRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.clientRepo.CountByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: count error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	resp := &models.ClientListResponse{
		Clients: make([]models.ClientResponse, len(clients)),
		Total:   total,
		Page:    max(req.Page, 1),
		Limit:   filter.PageLimit(),
	}
	for i := range clients {
		resp.Clients[i] = *models.FromDomainClient(&clients[i])
	}

	return resp, nil
}

// Update обновляет данные клиента
func (s *Service) Update(ctx context.Context, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	s.logger.Info("Update: updating client id=%d for company=%d", req.ClientID, req.CompanyID)

	if err := validateNameAndPhone(req.Name, req.Phone); err != nil {
		s.logger.Warn("Update: validation failed for client=%d: %v", req.ClientID, err)
		return nil, err
	}

	client := &domain.Client{
		ID:        req.ClientID,
		CompanyID: req.CompanyID,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
	}

	updated, err := s.clientRepo.Update(ctx, client)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Update: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated client id=%d", req.ClientID)
	return models.FromDomainClient(updated), nil
}

// Delete удаляет клиента компании
func (s *Service) Delete(ctx context.Context, companyID, clientID int64) error {
	s.logger.Info("Delete: deleting client id=%d for company=%d", clientID, companyID)

	if err := s.clientRepo.Delete(ctx, companyID, clientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Delete: client id=%d not found", clientID)
			return ErrClientNotFound
		}
		s.logger.Error("Delete: repository error for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted client id=%d", clientID)
	return nil
}

// getCompanyClient получает клиента и проверяет принадлежность компании
func (s *Service) getCompanyClient(ctx context.Context, companyID, clientID int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("getCompanyClient: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("getCompanyClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if client.CompanyID != companyID {
		s.logger.Warn("getCompanyClient: client id=%d belongs to company=%d, requested by company=%d",
			clientID, client.CompanyID, companyID)
		return nil, ErrAccessDenied
	}

	return client, nil
}

func validateNameAndPhone(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	return nil
}
