package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// 2025-10-29 - среда; "сейчас" - накануне
var (
	testDate = time.Date(2025, 10, 29, 0, 0, 0, 0, time.Local)
	testNow  = time.Date(2025, 10, 28, 12, 0, 0, 0, time.Local)
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeCatalogRepo struct {
	services []domain.CatalogService
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, _ int64, _ []int64) ([]domain.CatalogService, error) {
	return f.services, nil
}

type fakeSettings struct{}

func (fakeSettings) GetDomainSettings(_ context.Context, companyID int64) (*domain.CompanySettings, error) {
	return domain.DefaultCompanySettings(companyID), nil
}

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(services []domain.CatalogService, bookings ...*domain.Booking) *UseCase {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeCatalogRepo{services: services},
		fakeSettings{},
		nopLogger{},
	)
	uc.timeProvider = fakeTime{now: testNow}
	return uc
}

func oilChange() []domain.CatalogService {
	return []domain.CatalogService{
		{ID: 1, CompanyID: 7, Name: "Замена масла", DurationMinutes: 60, Price: 3000, Active: true},
	}
}

// --- Тесты ---

func TestExecute_EmptyDay(t *testing.T) {
	uc := newFixture(oilChange())

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testDate, ServiceIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-29", resp.Date)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Услуга в 60 минут должна закончиться к 18:00: последний старт 17:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "08:00", resp.Slots[0])
	assert.Equal(t, "17:00", resp.Slots[len(resp.Slots)-1])
	assert.Len(t, resp.Slots, 19)
}

func TestExecute_OccupiedIntervalExcluded(t *testing.T) {
	uc := newFixture(oilChange(), &domain.Booking{
		ID:        1,
		StartTime: "10:00",
		Services:  []domain.BookingService{{ServiceID: 2, DurationMinutes: 60}},
		Status:    domain.StatusConfirmed,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testDate, ServiceIDs: []int64{1},
	})
	require.NoError(t, err)

	// 60-минутная услуга не умещается со стартом 09:30, 10:00 и 10:30
	for _, blocked := range []string{"09:30", "10:00", "10:30"} {
		assert.NotContains(t, resp.Slots, blocked)
	}
	assert.Contains(t, resp.Slots, "09:00")
	assert.Contains(t, resp.Slots, "11:00")
}

func TestExecute_MultiServiceDuration(t *testing.T) {
	services := append(oilChange(), domain.CatalogService{
		ID: 2, CompanyID: 7, Name: "Диагностика", DurationMinutes: 90, Price: 2000, Active: true,
	})
	uc := newFixture(services)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testDate, ServiceIDs: []int64{1, 2},
	})
	require.NoError(t, err)

	// 150 минут должны уместиться до 18:00: последний старт 15:30
	assert.Equal(t, 150, resp.DurationMinutes)
	assert.Equal(t, "15:30", resp.Slots[len(resp.Slots)-1])
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newFixture(oilChange())

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testNow.AddDate(0, 0, -1), ServiceIDs: []int64{1},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayAppliesNotice(t *testing.T) {
	uc := newFixture(oilChange())

	// Сейчас 12:00, упреждение 60 минут: старты раньше 13:00 скрыты
	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testNow, ServiceIDs: []int64{1},
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "13:00", resp.Slots[0])
}

func TestExecute_InactiveService(t *testing.T) {
	services := oilChange()
	services[0].Active = false
	uc := newFixture(services)

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID: 7, Date: testDate, ServiceIDs: []int64{1},
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_MissingServiceIDs(t *testing.T) {
	uc := newFixture(oilChange())

	_, err := uc.Execute(context.Background(), &Request{CompanyID: 7, Date: testDate})
	require.ErrorIs(t, err, ErrInvalidInput)
}
