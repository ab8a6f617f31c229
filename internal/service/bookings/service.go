package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/avlebedev/carservice-admin/internal/domain"
	bookingRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/booking"
	"github.com/avlebedev/carservice-admin/internal/service/bookings/models"
)

// Допустимые переходы статусов; отмена идет отдельным путем через Cancel
var statusTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:    {domain.StatusConfirmed},
	domain.StatusConfirmed:  {domain.StatusInProgress},
	domain.StatusInProgress: {domain.StatusCompleted},
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       ScheduleCache
	loyalty     LoyaltyService
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, cache ScheduleCache, loyalty LoyaltyService, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		loyalty:     loyalty,
		logger:      logger,
	}
}

// GetByID получает бронирование компании по ID
func (s *Service) GetByID(ctx context.Context, companyID, id int64) (*models.BookingResponse, error) {
	booking, err := s.getCompanyBooking(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCompanyBookings получает бронирования компании с фильтрацией и пагинацией
// Фильтры: клиент, период, статус, включение отмененных
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyBookings: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	total, err := s.bookingRepo.CountByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: count error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - count error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, total, max(req.Page, 1), filter.PageLimit()), nil
}

// Cancel отменяет бронирование компании
// Отмененное бронирование освобождает свои слоты в расписании
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d for company=%d", bookingID, req.CompanyID)

	booking, err := s.getCompanyBooking(ctx, req.CompanyID, bookingID)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.invalidateScheduleDay(ctx, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus переводит бронирование в новый статус
// Допустимы только переходы вперед по жизненному циклу
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	booking, err := s.getCompanyBooking(ctx, req.CompanyID, bookingID)
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return ErrInvalidStatus
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d requested through status update", bookingID)
		return fmt.Errorf("%w: use cancel endpoint to cancel a booking", ErrInvalidTransition)
	}

	if !transitionAllowed(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.invalidateScheduleDay(ctx, booking)

	if newStatus == domain.StatusCompleted {
		s.accrueLoyaltyPoints(ctx, booking)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// accrueLoyaltyPoints начисляет баллы за завершенное бронирование.
// Начисление идемпотентно по бронированию; при ошибке его доберет фоновый свип
func (s *Service) accrueLoyaltyPoints(ctx context.Context, booking *domain.Booking) {
	points := domain.LoyaltyPointsForTotal(booking.TotalPrice())
	if err := s.loyalty.AccrueForBooking(ctx, booking.CompanyID, booking.ClientID, booking.ID, points); err != nil {
		s.logger.Error("accrueLoyaltyPoints: failed for booking id=%d: %v", booking.ID, err)
	}
}

func (s *Service) getCompanyBooking(ctx context.Context, companyID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getCompanyBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getCompanyBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if booking.CompanyID != companyID {
		s.logger.Warn("getCompanyBooking: booking id=%d belongs to company=%d, requested by company=%d",
			bookingID, booking.CompanyID, companyID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) invalidateScheduleDay(ctx context.Context, booking *domain.Booking) {
	date := booking.BookingDate.Format(domain.DateFormat)
	if err := s.cache.InvalidateSchedule(ctx, booking.CompanyID, date); err != nil {
		s.logger.Warn("invalidateScheduleDay: failed for company=%d date=%s: %v",
			booking.CompanyID, date, err)
	}
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
