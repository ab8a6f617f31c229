package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/infra/cache"
	settingsRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/settings"
	"github.com/avlebedev/carservice-admin/internal/service/settings/models"
)

// Время жизни настроек в кэше
const settingsCacheTTL = 5 * time.Minute

// Сколько дней расписания инвалидируется при смене настроек
const scheduleInvalidationDays = 14

// Service сервис настроек компании
type Service struct {
	repo   SettingsRepository
	cache  SettingsCache
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, cache SettingsCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetSettings возвращает настройки компании
// Порядок источников: кэш, БД, канонические дефолты
func (s *Service) GetSettings(ctx context.Context, companyID int64) (*models.SettingsResponse, error) {
	if cached, err := s.cache.GetCompanySettings(ctx, companyID); err == nil {
		return models.FromDomainSettings(cached), nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		// Кэш недоступен - читаем из БД, но не роняем запрос
		s.logger.Warn("GetSettings: cache error for company=%d: %v", companyID, err)
	}

	settings, err := s.getFromStorage(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCompanySettings(ctx, settings, settingsCacheTTL); err != nil {
		s.logger.Warn("GetSettings: failed to cache settings for company=%d: %v", companyID, err)
	}

	return models.FromDomainSettings(settings), nil
}

// GetDomainSettings возвращает настройки компании как domain модель
// Используется другими сервисами и фоновыми задачами
func (s *Service) GetDomainSettings(ctx context.Context, companyID int64) (*domain.CompanySettings, error) {
	if cached, err := s.cache.GetCompanySettings(ctx, companyID); err == nil {
		return cached, nil
	}

	return s.getFromStorage(ctx, companyID)
}

// UpdateSettings сохраняет настройки компании и сбрасывает зависимые кэши
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: company=%d, slotDuration=%d", req.CompanyID, req.SlotDurationMinutes)

	settings := req.ToDomain()

	if err := settings.WorkHours.Validate(); err != nil {
		s.logger.Warn("UpdateSettings: invalid work hours for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkHours, err)
	}

	if settings.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		settings.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		s.logger.Warn("UpdateSettings: invalid slot duration=%d for company=%d",
			settings.SlotDurationMinutes, req.CompanyID)
		return nil, ErrInvalidSlotDuration
	}

	if settings.MinBookingNoticeMinutes < 0 || settings.AdvanceBookingDays < 0 {
		s.logger.Warn("UpdateSettings: negative notice or advance days for company=%d", req.CompanyID)
		return nil, ErrInvalidInput
	}

	saved, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.invalidateCaches(ctx, req.CompanyID)

	s.logger.Info("UpdateSettings: successfully saved settings for company=%d", req.CompanyID)
	return models.FromDomainSettings(saved), nil
}

func (s *Service) getFromStorage(ctx context.Context, companyID int64) (*domain.CompanySettings, error) {
	settings, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			// Компания еще не сохраняла настройки - работаем на дефолтах
			return domain.DefaultCompanySettings(companyID), nil
		}
		s.logger.Error("GetSettings: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return settings, nil
}

// invalidateCaches сбрасывает кэш настроек и ближайшие дни расписания
// Смена рабочих часов меняет сетку слотов на все будущие даты
func (s *Service) invalidateCaches(ctx context.Context, companyID int64) {
	if err := s.cache.InvalidateCompanySettings(ctx, companyID); err != nil {
		s.logger.Warn("UpdateSettings: failed to invalidate settings cache for company=%d: %v", companyID, err)
	}

	today := time.Now()
	for day := 0; day < scheduleInvalidationDays; day++ {
		date := today.AddDate(0, 0, day).Format(domain.DateFormat)
		if err := s.cache.InvalidateSchedule(ctx, companyID, date); err != nil {
			s.logger.Warn("UpdateSettings: failed to invalidate schedule cache for company=%d date=%s: %v",
				companyID, date, err)
		}
	}
}
