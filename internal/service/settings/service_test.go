package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/infra/cache"
	settingsRepo "github.com/avlebedev/carservice-admin/internal/infra/storage/settings"
	"github.com/avlebedev/carservice-admin/internal/service/settings/models"
)

// --- Фейки зависимостей ---

type fakeRepo struct {
	settings *domain.CompanySettings
	getCalls int
	upserted *domain.CompanySettings
}

func (f *fakeRepo) GetByCompany(_ context.Context, _ int64) (*domain.CompanySettings, error) {
	f.getCalls++
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeRepo) Upsert(_ context.Context, settings *domain.CompanySettings) (*domain.CompanySettings, error) {
	f.upserted = settings
	return settings, nil
}

type fakeCache struct {
	settings            *domain.CompanySettings
	setCalls            int
	settingsInvalidated int
	scheduleInvalidated []string
}

func (f *fakeCache) GetCompanySettings(_ context.Context, _ int64) (*domain.CompanySettings, error) {
	if f.settings == nil {
		return nil, cache.ErrCacheMiss
	}
	return f.settings, nil
}

func (f *fakeCache) SetCompanySettings(_ context.Context, settings *domain.CompanySettings, _ time.Duration) error {
	f.setCalls++
	f.settings = settings
	return nil
}

func (f *fakeCache) InvalidateCompanySettings(_ context.Context, _ int64) error {
	f.settingsInvalidated++
	f.settings = nil
	return nil
}

func (f *fakeCache) InvalidateSchedule(_ context.Context, _ int64, date string) error {
	f.scheduleInvalidated = append(f.scheduleInvalidated, date)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validUpdate() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		CompanyID: 7,
		WorkHours: models.WorkHoursPayload{
			WeekdayStart: "09:00",
			WeekdayEnd:   "19:00",
			WeekendStart: "10:00",
			WeekendEnd:   "16:00",
		},
		SlotDurationMinutes:     15,
		MinBookingNoticeMinutes: 30,
		AdvanceBookingDays:      14,
	}
}

// --- Тесты ---

func TestGetSettings_DefaultsWhenNoRow(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	resp, err := svc.GetSettings(context.Background(), 7)
	require.NoError(t, err)

	// Компания без записи работает на канонических дефолтах
	assert.Equal(t, int64(7), resp.CompanyID)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, 60, resp.MinBookingNoticeMinutes)
	assert.Equal(t, 0, resp.AdvanceBookingDays)
	assert.Equal(t, "08:00", resp.WorkHours.WeekdayStart)
	assert.Equal(t, "17:00", resp.WorkHours.WeekendEnd)
}

func TestGetSettings_SecondCallServedFromCache(t *testing.T) {
	repo := &fakeRepo{}
	c := &fakeCache{}
	svc := NewService(repo, c, nopLogger{})

	_, err := svc.GetSettings(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
	assert.Equal(t, 1, c.setCalls)

	_, err = svc.GetSettings(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
}

func TestUpdateSettings_Success(t *testing.T) {
	repo := &fakeRepo{}
	c := &fakeCache{}
	svc := NewService(repo, c, nopLogger{})

	resp, err := svc.UpdateSettings(context.Background(), validUpdate())
	require.NoError(t, err)

	assert.Equal(t, 15, resp.SlotDurationMinutes)
	assert.Equal(t, "09:00", resp.WorkHours.WeekdayStart)
	require.NotNil(t, repo.upserted)

	// Смена настроек сбрасывает кэш настроек и две недели расписания
	assert.Equal(t, 1, c.settingsInvalidated)
	assert.Len(t, c.scheduleInvalidated, scheduleInvalidationDays)
}

func TestUpdateSettings_EndBeforeStart(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	req := validUpdate()
	req.WorkHours.WeekdayEnd = "08:00"

	_, err := svc.UpdateSettings(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidWorkHours)
}

func TestUpdateSettings_SlotDurationOutOfBounds(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	req := validUpdate()
	req.SlotDurationMinutes = 3

	_, err := svc.UpdateSettings(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlotDuration)

	req.SlotDurationMinutes = 600
	_, err = svc.UpdateSettings(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlotDuration)
}

func TestUpdateSettings_NegativeNotice(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	req := validUpdate()
	req.MinBookingNoticeMinutes = -5

	_, err := svc.UpdateSettings(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}
