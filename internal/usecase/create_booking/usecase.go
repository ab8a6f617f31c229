package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avlebedev/carservice-admin/internal/domain"
	clientRepoPkg "github.com/avlebedev/carservice-admin/internal/infra/storage/client"
	vehicleRepoPkg "github.com/avlebedev/carservice-admin/internal/infra/storage/vehicle"
	"github.com/avlebedev/carservice-admin/internal/schedule"
	"github.com/avlebedev/carservice-admin/pkg/ptr"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	clientRepo   ClientRepository
	vehicleRepo  VehicleRepository
	settings     SettingsProvider
	cache        ScheduleCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	vehicleRepo VehicleRepository,
	settings SettingsProvider,
	cache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		clientRepo:   clientRepo,
		vehicleRepo:  vehicleRepo,
		settings:     settings,
		cache:        cache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование
// Проверка занятости и вставка идут в одной сериализуемой транзакции,
// чтобы две конкурентные записи не заняли один интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: company=%d, client=%d, vehicle=%d, date=%s, time=%s, services=%d",
		req.CompanyID, req.ClientID, req.VehicleID,
		req.Date.Format(domain.DateFormat), req.StartTime, len(req.ServiceIDs))

	// 1. Валидация черновика - до обращений к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Настройки компании: рабочие часы, сетка, ограничения
	settings, err := uc.settings.GetDomainSettings(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get settings for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 3. Дата: не в прошлом, не дальше advanceBookingDays
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: invalid date %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	// 4. Участники: клиент и его автомобиль
	client, err := uc.getClient(ctx, req.CompanyID, req.ClientID)
	if err != nil {
		return nil, err
	}

	vehicle, err := uc.getVehicle(ctx, req.CompanyID, req.ClientID, req.VehicleID)
	if err != nil {
		return nil, err
	}

	// 5. Услуги из каталога; суммарная длительность определяет интервал
	services, err := uc.getServices(ctx, req.CompanyID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	totalDuration := 0
	for _, s := range services {
		totalDuration += s.DurationMinutes
	}

	// 6. Интервал в рабочих часах и выровнен по сетке
	workStart, workEnd := settings.WorkHours.ForDate(req.Date)
	if err := validateTimeSlot(req.StartTime, totalDuration, workStart, workEnd, settings.SlotDurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: invalid time slot %s: %v", req.StartTime, err)
		return nil, err
	}

	// 7. Минимальное время упреждения для записей на сегодня
	if err := validateBookingNotice(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: notice check failed for time %s: %v", req.StartTime, err)
		return nil, err
	}

	booking := &domain.Booking{
		CompanyID:    req.CompanyID,
		ClientID:     req.ClientID,
		VehicleID:    req.VehicleID,
		BookingDate:  req.Date,
		StartTime:    req.StartTime,
		Services:     services,
		Status:       domain.StatusPending,
		ClientName:   client.Name,
		ClientPhone:  client.Phone,
		VehiclePlate: vehicle.Plate,
		Notes:        req.Notes,
	}

	// 8. Проверка занятости и вставка атомарно
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, domain.CompanyBookingsFilter{
			CompanyID: req.CompanyID,
			StartDate: ptr.Ptr(req.Date),
			EndDate:   ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to load bookings for date: %v", ErrInternal, err)
		}

		conflict, err := schedule.HasConflict(req.StartTime, totalDuration, existing)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		booking = created

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	// 9. Сетка на эту дату изменилась
	date := req.Date.Format(domain.DateFormat)
	if err := uc.cache.InvalidateSchedule(ctx, req.CompanyID, date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate schedule cache for company=%d date=%s: %v",
			req.CompanyID, date, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for company=%d",
		booking.ID, req.CompanyID)
	return buildResponse(booking), nil
}

func (uc *UseCase) getClient(ctx context.Context, companyID, clientID int64) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, clientRepoPkg.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if client.CompanyID != companyID {
		uc.logger.Warn("CreateBooking: client id=%d belongs to another company", clientID)
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (uc *UseCase) getVehicle(ctx context.Context, companyID, clientID, vehicleID int64) (*domain.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepoPkg.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", vehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if vehicle.CompanyID != companyID {
		uc.logger.Warn("CreateBooking: vehicle id=%d belongs to another company", vehicleID)
		return nil, ErrVehicleNotFound
	}
	if vehicle.ClientID != clientID {
		uc.logger.Warn("CreateBooking: vehicle id=%d belongs to client=%d, requested for client=%d",
			vehicleID, vehicle.ClientID, clientID)
		return nil, ErrVehicleOwnerMismatch
	}
	return vehicle, nil
}

// getServices загружает услуги каталога и денормализует их в состав бронирования
// Каждая запрошенная услуга должна существовать и быть активной
func (uc *UseCase) getServices(ctx context.Context, companyID int64, ids []int64) ([]domain.BookingService, error) {
	found, err := uc.catalogRepo.GetByIDs(ctx, companyID, ids)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.CatalogService, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	services := make([]domain.BookingService, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			uc.logger.Warn("CreateBooking: service id=%d not found or inactive for company=%d", id, companyID)
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		services = append(services, svc.ToBookingService())
	}

	return services, nil
}
