package get_available_slots

import (
	"context"
	"fmt"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/schedule"
	"github.com/avlebedev/carservice-admin/pkg/ptr"
)

// UseCase use case поиска свободных времен начала
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	settings     SettingsProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	settings SettingsProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает времена начала, в которые выбранные услуги
// умещаются целиком: до закрытия и без пересечений с активными бронированиями
// Для сегодняшней даты дополнительно применяется минимальное упреждение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: serviceIDs are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// Прошедшая дата - пустая выдача, не ошибка
	if schedule.DateInPast(req.Date, now) {
		return buildResponse(req.Date, domain.DateFormat, 0, nil), nil
	}

	settings, err := uc.settings.GetDomainSettings(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	totalDuration, err := uc.totalDuration(ctx, req.CompanyID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.Generate(settings.WorkHours, req.Date, settings.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	slots, err = schedule.FilterByNotice(slots, req.Date, now, settings.MinBookingNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter by notice for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, domain.CompanyBookingsFilter{
		CompanyID: req.CompanyID,
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load bookings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	_, workEnd := settings.WorkHours.ForDate(req.Date)
	starts, err := schedule.FreeStarts(slots, workEnd, totalDuration, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute free starts for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to compute free starts: %v", ErrInternal, err)
	}

	return buildResponse(req.Date, domain.DateFormat, totalDuration, starts), nil
}

// totalDuration суммирует длительности выбранных услуг каталога
func (uc *UseCase) totalDuration(ctx context.Context, companyID int64, ids []int64) (int, error) {
	services, err := uc.catalogRepo.GetByIDs(ctx, companyID, ids)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services for company=%d: %v", companyID, err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.CatalogService, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	total := 0
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found or inactive for company=%d", id, companyID)
			return 0, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		total += svc.DurationMinutes
	}

	return total, nil
}
