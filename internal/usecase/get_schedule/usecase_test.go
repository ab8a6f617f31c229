package get_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/infra/cache"
)

// 2025-10-29 - среда, рабочие часы по умолчанию 08:00-18:00
var testDate = time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

type fakeSettings struct{}

func (fakeSettings) GetDomainSettings(_ context.Context, companyID int64) (*domain.CompanySettings, error) {
	return domain.DefaultCompanySettings(companyID), nil
}

type fakeCache struct {
	stored   map[string][]domain.ScheduleSlot
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[string][]domain.ScheduleSlot)}
}

func (f *fakeCache) GetSchedule(_ context.Context, _ int64, date string) ([]domain.ScheduleSlot, error) {
	f.getCalls++
	if slots, ok := f.stored[date]; ok {
		return slots, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeCache) SetSchedule(_ context.Context, _ int64, date string, slots []domain.ScheduleSlot, _ time.Duration) error {
	f.setCalls++
	f.stored[date] = slots
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(bookings ...*domain.Booking) (*UseCase, *fakeBookingRepo, *fakeCache) {
	repo := &fakeBookingRepo{bookings: bookings}
	c := newFakeCache()
	return NewUseCase(repo, fakeSettings{}, c, nopLogger{}), repo, c
}

// --- Тесты ---

func TestExecute_EmptyDay(t *testing.T) {
	uc, _, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 7, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-29", resp.Date)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, "08:00", resp.WorkStart)
	assert.Equal(t, "18:00", resp.WorkEnd)

	// 08:00-18:00 с шагом 30 минут: 20 свободных слотов
	require.Len(t, resp.Slots, 20)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.BookingID)
	}
	assert.Equal(t, "08:00", resp.Slots[0].StartTime)
	assert.Equal(t, "08:30", resp.Slots[0].EndTime)
	assert.Equal(t, "17:30", resp.Slots[19].StartTime)
}

func TestExecute_MultiSlotBooking(t *testing.T) {
	clientName := "Иванов"
	uc, _, _ := newFixture(&domain.Booking{
		ID:         1,
		StartTime:  "10:00",
		ClientName: clientName,
		Services: []domain.BookingService{
			{ServiceID: 1, Name: "Замена масла", DurationMinutes: 60},
			{ServiceID: 2, Name: "Диагностика", DurationMinutes: 30},
		},
		Status: domain.StatusConfirmed,
	})

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 7, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 20)

	// 10:00-11:30 занимает три слота: начало и два продолжения
	for i, slot := range resp.Slots {
		switch slot.StartTime {
		case "10:00":
			assert.False(t, slot.Available)
			assert.True(t, slot.IsStart)
			assert.False(t, slot.IsContinuation)
			require.NotNil(t, slot.BookingID)
			assert.Equal(t, int64(1), *slot.BookingID)
			assert.Equal(t, []string{"Замена масла", "Диагностика"}, slot.ServiceNames)
		case "10:30", "11:00":
			assert.False(t, slot.Available)
			assert.False(t, slot.IsStart)
			assert.True(t, slot.IsContinuation)
			require.NotNil(t, slot.BookingID)
			assert.Equal(t, int64(1), *slot.BookingID)
		default:
			assert.True(t, slot.Available, "slot %d (%s) must stay free", i, slot.StartTime)
		}
	}
}

func TestExecute_CancelledBookingNotShown(t *testing.T) {
	uc, _, _ := newFixture(&domain.Booking{
		ID:        1,
		StartTime: "10:00",
		Services:  []domain.BookingService{{ServiceID: 1, DurationMinutes: 60}},
		Status:    domain.StatusCancelled,
	})

	resp, err := uc.Execute(context.Background(), &Request{CompanyID: 7, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecute_SecondCallServedFromCache(t *testing.T) {
	uc, repo, c := newFixture()
	req := &Request{CompanyID: 7, Date: testDate}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, c.setCalls)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повторный запрос не ходит в хранилище
	assert.Equal(t, 1, repo.calls)
	assert.Len(t, resp.Slots, 20)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 0, Date: testDate})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: 7})
	require.ErrorIs(t, err, ErrInvalidInput)
}
