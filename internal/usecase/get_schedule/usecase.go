package get_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/infra/cache"
	"github.com/avlebedev/carservice-admin/internal/schedule"
	"github.com/avlebedev/carservice-admin/pkg/ptr"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// Время жизни сетки в кэше; любое изменение бронирований на дату
// инвалидирует ключ раньше
const scheduleCacheTTL = 30 * time.Second

// UseCase use case дневной сетки расписания
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	cache       ScheduleCache
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	cache ScheduleCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		cache:       cache,
		logger:      logger,
	}
}

// Execute строит дневную сетку с аннотацией занятости
// Каждый слот либо свободен, либо помечен началом или продолжением
// занявшего его бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	settings, err := uc.settings.GetDomainSettings(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get settings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	workStart, workEnd := settings.WorkHours.ForDate(req.Date)
	date := req.Date.Format(domain.DateFormat)

	if cached, err := uc.cache.GetSchedule(ctx, req.CompanyID, date); err == nil {
		return uc.buildResponse(date, settings, workStart, workEnd, cached), nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		uc.logger.Warn("GetSchedule: cache error for company=%d date=%s: %v", req.CompanyID, date, err)
	}

	annotated, err := uc.buildGrid(ctx, req, settings)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetSchedule(ctx, req.CompanyID, date, annotated, scheduleCacheTTL); err != nil {
		uc.logger.Warn("GetSchedule: failed to cache schedule for company=%d date=%s: %v",
			req.CompanyID, date, err)
	}

	return uc.buildResponse(date, settings, workStart, workEnd, annotated), nil
}

// buildGrid строит сетку слотов и размечает ее бронированиями на дату
func (uc *UseCase) buildGrid(ctx context.Context, req *Request, settings *domain.CompanySettings) ([]domain.ScheduleSlot, error) {
	slots, err := schedule.Generate(settings.WorkHours, req.Date, settings.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to generate slots for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, domain.CompanyBookingsFilter{
		CompanyID: req.CompanyID,
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetSchedule: failed to load bookings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	annotated, err := schedule.MapOccupancy(slots, settings.SlotDurationMinutes, bookings)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to map occupancy for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to map occupancy: %v", ErrInternal, err)
	}

	return annotated, nil
}

func (uc *UseCase) buildResponse(
	date string,
	settings *domain.CompanySettings,
	workStart, workEnd types.TimeString,
	slots []domain.ScheduleSlot,
) *Response {
	return &Response{
		Date:                date,
		SlotDurationMinutes: settings.SlotDurationMinutes,
		WorkStart:           workStart.String(),
		WorkEnd:             workEnd.String(),
		Slots:               fromDomainSlots(slots),
	}
}
