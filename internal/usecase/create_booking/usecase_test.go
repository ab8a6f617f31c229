package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	vehicleRepoPkg "github.com/avlebedev/carservice-admin/internal/infra/storage/vehicle"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// 2025-10-29 - среда; "сейчас" - накануне в полдень
var (
	testDate = time.Date(2025, 10, 29, 0, 0, 0, 0, time.Local)
	testNow  = time.Date(2025, 10, 28, 12, 0, 0, 0, time.Local)
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	existing    []*domain.Booking
	created     *domain.Booking
	getCalls    int
	createCalls int
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	f.getCalls++
	return f.existing, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	created := *booking
	created.ID = 42
	f.created = &created
	return &created, nil
}

type fakeCatalogRepo struct {
	services []domain.CatalogService
	calls    int
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, _ int64, _ []int64) ([]domain.CatalogService, error) {
	f.calls++
	return f.services, nil
}

type fakeClientRepo struct {
	client *domain.Client
	err    error
	calls  int
}

func (f *fakeClientRepo) GetByID(_ context.Context, _ int64) (*domain.Client, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type fakeVehicleRepo struct {
	vehicle *domain.Vehicle
	err     error
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, _ int64) (*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
}

type fakeSettings struct {
	settings *domain.CompanySettings
}

func (f *fakeSettings) GetDomainSettings(_ context.Context, companyID int64) (*domain.CompanySettings, error) {
	if f.settings != nil {
		return f.settings, nil
	}
	return domain.DefaultCompanySettings(companyID), nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateSchedule(_ context.Context, _ int64, date string) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTime struct{ now time.Time }

func (f fakeTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Сборка ---

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	catalog  *fakeCatalogRepo
	clients  *fakeClientRepo
	vehicles *fakeVehicleRepo
	cache    *fakeCache
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		catalog: &fakeCatalogRepo{
			services: []domain.CatalogService{
				{ID: 1, CompanyID: 7, Name: "Замена масла", DurationMinutes: 60, Price: 3000, Active: true},
			},
		},
		clients: &fakeClientRepo{
			client: &domain.Client{ID: 3, CompanyID: 7, Name: "Иванов", Phone: "+79990001122"},
		},
		vehicles: &fakeVehicleRepo{
			vehicle: &domain.Vehicle{ID: 5, CompanyID: 7, ClientID: 3, Plate: "А123БВ777"},
		},
		cache: &fakeCache{},
	}

	f.uc = NewUseCase(
		f.bookings,
		f.catalog,
		f.clients,
		f.vehicles,
		&fakeSettings{},
		f.cache,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fakeTime{now: testNow}

	return f
}

func validRequest() *Request {
	return &Request{
		CompanyID:  7,
		ClientID:   3,
		VehicleID:  5,
		ServiceIDs: []int64{1},
		Date:       testDate,
		StartTime:  "10:00",
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 3000.0, resp.TotalPrice)
	assert.Equal(t, "Иванов", resp.ClientName)
	assert.Equal(t, "А123БВ777", resp.VehiclePlate)

	// Сетка на эту дату сброшена в кэше
	require.Len(t, f.cache.invalidated, 1)
	assert.Equal(t, "2025-10-29", f.cache.invalidated[0])
}

func TestExecute_MissingField_NoStorageCalls(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceIDs = nil

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrMissingField)

	// Неполный черновик отклоняется до единого запроса к хранилищу
	assert.Zero(t, f.clients.calls)
	assert.Zero(t, f.catalog.calls)
	assert.Zero(t, f.bookings.getCalls)
	assert.Zero(t, f.bookings.createCalls)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()

	// Занят интервал 10:00-11:00 - запрошенный 10:00-11:00 пересекается
	f.bookings.existing = []*domain.Booking{{
		ID:        1,
		StartTime: "10:00",
		Services:  []domain.BookingService{{ServiceID: 2, DurationMinutes: 60}},
		Status:    domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, f.bookings.createCalls)
}

func TestExecute_AdjacentBookingDoesNotConflict(t *testing.T) {
	f := newFixture()

	// Соседний интервал 09:00-10:00 заканчивается ровно в момент начала
	f.bookings.existing = []*domain.Booking{{
		ID:        1,
		StartTime: "09:00",
		Services:  []domain.BookingService{{ServiceID: 2, DurationMinutes: 60}},
		Status:    domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, f.bookings.createCalls)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture()

	f.bookings.existing = []*domain.Booking{{
		ID:        1,
		StartTime: "10:00",
		Services:  []domain.BookingService{{ServiceID: 2, DurationMinutes: 60}},
		Status:    domain.StatusCancelled,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_VehicleOwnerMismatch(t *testing.T) {
	f := newFixture()
	f.vehicles.vehicle = &domain.Vehicle{ID: 5, CompanyID: 7, ClientID: 99, Plate: "А123БВ777"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrVehicleOwnerMismatch)
}

func TestExecute_VehicleNotFound(t *testing.T) {
	f := newFixture()
	f.vehicles.err = vehicleRepoPkg.ErrVehicleNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecute_ClientFromAnotherCompany(t *testing.T) {
	f := newFixture()
	f.clients.client = &domain.Client{ID: 3, CompanyID: 1000, Name: "Чужой"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	f := newFixture()
	f.catalog.services[0].Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	f := newFixture()

	settings := domain.DefaultCompanySettings(7)
	settings.AdvanceBookingDays = 14
	f.uc.settings = &fakeSettings{settings: settings}

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, 30)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MisalignedStartTime(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "10:15" // сетка 30 минут от 08:00

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_EndsAfterClosing(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "17:30" // 60 минут не умещаются до 18:00

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	f := newFixture()

	// Запись на сегодня меньше чем за 60 минут до начала
	req := validRequest()
	req.Date = testNow
	req.StartTime = "12:30"

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_InternalOnSettingsFailure(t *testing.T) {
	f := newFixture()
	f.uc.settings = failingSettings{}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
}

type failingSettings struct{}

func (failingSettings) GetDomainSettings(context.Context, int64) (*domain.CompanySettings, error) {
	return nil, errors.New("db down")
}
