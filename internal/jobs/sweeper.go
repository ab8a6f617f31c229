package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

const (
	// Интервал обхода по умолчанию; совпадает с TTL кэша расписания
	defaultSweepInterval = 30 * time.Second

	sweepTimeout = 20 * time.Second
)

// Sweeper фоновая задача автоматического продвижения статусов бронирований.
// Подтвержденные бронирования переводятся в "в работе" после времени начала,
// бронирования "в работе" - в "завершено" после времени окончания. За каждое
// завершенное бронирование клиенту начисляются баллы лояльности
type Sweeper struct {
	bookingRepo    BookingRepository
	loyaltyService LoyaltyService
	scheduleCache  ScheduleCache
	timeProvider   TimeProvider
	logger         Logger

	interval time.Duration
	cron     *cron.Cron
}

func NewSweeper(
	bookingRepo BookingRepository,
	loyaltyService LoyaltyService,
	scheduleCache ScheduleCache,
	interval time.Duration,
	logger Logger,
) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &Sweeper{
		bookingRepo:    bookingRepo,
		loyaltyService: loyaltyService,
		scheduleCache:  scheduleCache,
		timeProvider:   RealTimeProvider{},
		logger:         logger,
		interval:       interval,
		cron:           cron.New(),
	}
}

// Start запускает периодический обход статусов
func (s *Sweeper) Start() error {
	schedule := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Sweeper: started, interval=%s", s.interval)
	return nil
}

// Stop останавливает обход и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Sweeper: stopped")
}

// Sweep выполняет один проход по активным бронированиям текущего дня.
// Ошибки отдельных бронирований логируются, проход продолжается
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.GetActiveOnDate(ctx, now)
	if err != nil {
		s.logger.Error("Sweep: failed to get active bookings: %v", err)
		return
	}

	advanced := 0
	for _, booking := range bookings {
		changed, err := s.advance(ctx, booking, now)
		if err != nil {
			s.logger.Error("Sweep: failed to advance booking=%d: %v", booking.ID, err)
			continue
		}
		if changed {
			advanced++
		}
	}

	if advanced > 0 {
		s.logger.Info("Sweep: advanced %d of %d bookings", advanced, len(bookings))
	}
}

// advance продвигает статус одного бронирования, если его время пришло
func (s *Sweeper) advance(ctx context.Context, booking *domain.Booking, now time.Time) (bool, error) {
	start, err := startOfBooking(booking, now.Location())
	if err != nil {
		return false, err
	}
	end := start.Add(time.Duration(booking.TotalDurationMinutes()) * time.Minute)

	switch booking.Status {
	case domain.StatusConfirmed:
		if now.Before(start) {
			return false, nil
		}
		// Время окончания тоже могло пройти - завершаем сразу
		if !now.Before(end) {
			return true, s.complete(ctx, booking)
		}
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusInProgress); err != nil {
			return false, err
		}
		s.logger.Info("Sweep: booking=%d confirmed -> in_progress", booking.ID)
		s.invalidateScheduleDay(ctx, booking)
		return true, nil

	case domain.StatusInProgress:
		if now.Before(end) {
			return false, nil
		}
		return true, s.complete(ctx, booking)

	case domain.StatusCompleted:
		// Повторная попытка начисления, если прошлый проход не смог;
		// AccrueForBooking идемпотентен по бронированию
		s.accruePoints(ctx, booking)
		return false, nil

	default:
		return false, nil
	}
}

// complete завершает бронирование и начисляет баллы лояльности
func (s *Sweeper) complete(ctx context.Context, booking *domain.Booking) error {
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted); err != nil {
		return err
	}
	s.logger.Info("Sweep: booking=%d -> completed", booking.ID)
	s.invalidateScheduleDay(ctx, booking)

	s.accruePoints(ctx, booking)
	return nil
}

func (s *Sweeper) accruePoints(ctx context.Context, booking *domain.Booking) {
	points := domain.LoyaltyPointsForTotal(booking.TotalPrice())
	if err := s.loyaltyService.AccrueForBooking(ctx, booking.CompanyID, booking.ClientID, booking.ID, points); err != nil {
		// Начисление повторится на следующем проходе
		s.logger.Error("Sweep: failed to accrue points for booking=%d: %v", booking.ID, err)
	}
}

func (s *Sweeper) invalidateScheduleDay(ctx context.Context, booking *domain.Booking) {
	date := booking.BookingDate.Format(domain.DateFormat)
	if err := s.scheduleCache.InvalidateSchedule(ctx, booking.CompanyID, date); err != nil {
		s.logger.Warn("Sweep: failed to invalidate schedule cache: company=%d, date=%s: %v",
			booking.CompanyID, date, err)
	}
}

// startOfBooking собирает момент начала из даты и времени бронирования
func startOfBooking(booking *domain.Booking, loc *time.Location) (time.Time, error) {
	minutes, err := booking.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	d := booking.BookingDate
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).
		Add(time.Duration(minutes) * time.Minute), nil
}
