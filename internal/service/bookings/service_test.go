package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/service/bookings/models"
)

var testDate = time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	booking       *domain.Booking
	statusUpdates []domain.BookingStatus
	cancelled     bool
	cancelReason  string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) CountByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) (int, error) {
	return 1, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateSchedule(_ context.Context, _ int64, date string) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type fakeLoyalty struct {
	err error

	calls     int
	gotPoints int
	gotBookID int64
}

func (f *fakeLoyalty) AccrueForBooking(_ context.Context, _, _, bookingID int64, points int) error {
	f.calls++
	f.gotBookID = bookingID
	f.gotPoints = points
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(status domain.BookingStatus) (*Service, *fakeBookingRepo, *fakeCache, *fakeLoyalty) {
	repo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:          1,
			CompanyID:   7,
			ClientID:    3,
			BookingDate: testDate,
			StartTime:   "10:00",
			Services:    []domain.BookingService{{ServiceID: 1, Name: "Замена масла", DurationMinutes: 60, Price: 3000}},
			Status:      status,
		},
	}
	c := &fakeCache{}
	loyalty := &fakeLoyalty{}
	return NewService(repo, c, loyalty, nopLogger{}), repo, c, loyalty
}

// --- Тесты ---

func TestUpdateStatus_ForwardTransitions(t *testing.T) {
	cases := []struct {
		from domain.BookingStatus
		to   string
	}{
		{domain.StatusPending, "confirmed"},
		{domain.StatusConfirmed, "in_progress"},
		{domain.StatusInProgress, "completed"},
	}

	for _, tc := range cases {
		svc, repo, c, _ := newFixture(tc.from)

		err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			CompanyID: 7, Status: tc.to,
		})
		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		require.Len(t, repo.statusUpdates, 1)
		assert.Equal(t, domain.BookingStatus(tc.to), repo.statusUpdates[0])
		assert.Equal(t, []string{"2025-10-29"}, c.invalidated)
	}
}

func TestUpdateStatus_CompletionAccruesPoints(t *testing.T) {
	svc, _, _, loyalty := newFixture(domain.StatusInProgress)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "completed",
	})
	require.NoError(t, err)

	// 5% от чека 3000
	require.Equal(t, 1, loyalty.calls)
	assert.Equal(t, 150, loyalty.gotPoints)
	assert.Equal(t, int64(1), loyalty.gotBookID)
}

func TestUpdateStatus_NonFinalTransitionsDoNotAccrue(t *testing.T) {
	svc, _, _, loyalty := newFixture(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Zero(t, loyalty.calls)
}

func TestUpdateStatus_AccrualFailureDoesNotFailUpdate(t *testing.T) {
	svc, repo, _, loyalty := newFixture(domain.StatusInProgress)
	loyalty.err = errors.New("loyalty storage unavailable")

	// Статус меняется даже если начисление не прошло: его доберет фоновый свип
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "completed",
	})
	require.NoError(t, err)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[0])
	assert.Equal(t, 1, loyalty.calls)
}

func TestUpdateStatus_SkippingStepRejected(t *testing.T) {
	svc, repo, _, _ := newFixture(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "completed",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatus_BackwardRejected(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusInProgress)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "confirmed",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	svc, repo, _, _ := newFixture(domain.StatusPending)

	// Отмена через смену статуса запрещена: нужен endpoint отмены с причиной
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "cancelled",
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 7, Status: "postponed",
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ForeignCompany(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		CompanyID: 1000, Status: "confirmed",
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_Success(t *testing.T) {
	svc, repo, c, _ := newFixture(domain.StatusConfirmed)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CompanyID: 7, CancellationReason: "клиент передумал",
	})
	require.NoError(t, err)
	assert.True(t, repo.cancelled)
	assert.Equal(t, "клиент передумал", repo.cancelReason)

	// Слоты освободились - сетка на дату сброшена
	assert.Equal(t, []string{"2025-10-29"}, c.invalidated)
}

func TestCancel_InProgressRejected(t *testing.T) {
	svc, repo, _, _ := newFixture(domain.StatusInProgress)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CompanyID: 7, CancellationReason: "поздно",
	})
	require.ErrorIs(t, err, ErrCannotCancel)
	assert.False(t, repo.cancelled)
}

func TestCancel_AlreadyCancelledRejected(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusCancelled)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CompanyID: 7, CancellationReason: "повторно",
	})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestGetByID_ForeignCompany(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusPending)

	_, err := svc.GetByID(context.Background(), 1000, 1)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_Success(t *testing.T) {
	svc, _, _, _ := newFixture(domain.StatusConfirmed)

	resp, err := svc.GetByID(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
}
