package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	bookings      []*domain.Booking
	statusUpdates map[int64]domain.BookingStatus
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:      bookings,
		statusUpdates: make(map[int64]domain.BookingStatus),
	}
}

func (f *fakeBookingRepo) GetActiveOnDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statusUpdates[id] = status
	return nil
}

type fakeLoyalty struct {
	accrued  map[int64]int
	failures int // Столько первых вызовов завершаются ошибкой
	calls    int
}

func newFakeLoyalty() *fakeLoyalty {
	return &fakeLoyalty{accrued: make(map[int64]int)}
}

func (f *fakeLoyalty) AccrueForBooking(_ context.Context, _, _, bookingID int64, points int) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("loyalty storage unavailable")
	}
	f.accrued[bookingID] = points
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateSchedule(_ context.Context, _ int64, date string) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var sweepDate = time.Date(2025, 10, 29, 0, 0, 0, 0, time.Local)

func testBooking(id int64, start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		CompanyID:   7,
		ClientID:    3,
		BookingDate: sweepDate,
		StartTime:   types.TimeString(start),
		Services: []domain.BookingService{
			{ServiceID: 1, Name: "Замена масла", DurationMinutes: 60, Price: 3000},
		},
		Status: status,
	}
}

func newSweeper(repo *fakeBookingRepo, loyalty *fakeLoyalty, cache *fakeCache, now time.Time) *Sweeper {
	s := NewSweeper(repo, loyalty, cache, 30*time.Second, nopLogger{})
	s.timeProvider = fakeTime{now: now}
	return s
}

// --- Тесты ---

func TestSweep_ConfirmedStartsWork(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusConfirmed))
	loyalty := newFakeLoyalty()
	cache := &fakeCache{}

	// 10:30 - бронирование 10:00-11:00 уже началось, но не закончилось
	s := newSweeper(repo, loyalty, cache, sweepDate.Add(10*time.Hour+30*time.Minute))
	s.Sweep(context.Background())

	assert.Equal(t, domain.StatusInProgress, repo.statusUpdates[1])
	assert.Empty(t, loyalty.accrued)
	assert.Equal(t, []string{"2025-10-29"}, cache.invalidated)
}

func TestSweep_InProgressCompletesAndAccrues(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusInProgress))
	loyalty := newFakeLoyalty()
	cache := &fakeCache{}

	// 11:05 - интервал 10:00-11:00 закончился
	s := newSweeper(repo, loyalty, cache, sweepDate.Add(11*time.Hour+5*time.Minute))
	s.Sweep(context.Background())

	assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[1])

	// 5% от чека 3000 = 150 баллов
	require.Contains(t, loyalty.accrued, int64(1))
	assert.Equal(t, 150, loyalty.accrued[1])
}

func TestSweep_ConfirmedPastEndCompletesDirectly(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusConfirmed))
	loyalty := newFakeLoyalty()

	// Свипер пропустил интервал целиком - завершаем без промежуточного статуса
	s := newSweeper(repo, loyalty, &fakeCache{}, sweepDate.Add(12*time.Hour))
	s.Sweep(context.Background())

	assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[1])
	assert.Equal(t, 150, loyalty.accrued[1])
}

func TestSweep_BeforeStartNoChange(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusConfirmed))
	loyalty := newFakeLoyalty()
	cache := &fakeCache{}

	s := newSweeper(repo, loyalty, cache, sweepDate.Add(9*time.Hour))
	s.Sweep(context.Background())

	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, loyalty.accrued)
	assert.Empty(t, cache.invalidated)
}

func TestSweep_PendingUntouched(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusPending))
	loyalty := newFakeLoyalty()

	// Неподтвержденные записи не стартуют автоматически
	s := newSweeper(repo, loyalty, &fakeCache{}, sweepDate.Add(12*time.Hour))
	s.Sweep(context.Background())

	assert.Empty(t, repo.statusUpdates)
}

func TestSweep_CompletedRetriesAccrual(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "10:00", domain.StatusCompleted))
	loyalty := newFakeLoyalty()

	s := newSweeper(repo, loyalty, &fakeCache{}, sweepDate.Add(12*time.Hour))
	s.Sweep(context.Background())

	// Статус не трогаем, но начисление повторяется (идемпотентно на стороне сервиса)
	assert.Empty(t, repo.statusUpdates)
	assert.Equal(t, 150, loyalty.accrued[1])
}

func TestSweep_FailedAccrualRetriedNextPass(t *testing.T) {
	booking := testBooking(1, "10:00", domain.StatusInProgress)
	repo := newFakeBookingRepo(booking)
	loyalty := newFakeLoyalty()
	loyalty.failures = 1
	cache := &fakeCache{}

	s := newSweeper(repo, loyalty, cache, sweepDate.Add(11*time.Hour+5*time.Minute))

	// Первый проход: бронирование завершается, но начисление падает
	s.Sweep(context.Background())
	assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[1])
	assert.Empty(t, loyalty.accrued)

	// Следующий проход видит завершенное бронирование дня и добирает баллы
	booking.Status = domain.StatusCompleted
	s.Sweep(context.Background())
	require.Contains(t, loyalty.accrued, int64(1))
	assert.Equal(t, 150, loyalty.accrued[1])
}
