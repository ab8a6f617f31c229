package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/dbmetrics"
	"github.com/avlebedev/carservice-admin/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"company_id",
	"weekday_start",
	"weekday_end",
	"weekend_start",
	"weekend_end",
	"slot_duration_minutes",
	"min_booking_notice_minutes",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками компании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompany получает настройки компании
func (r *Repository) GetByCompany(ctx context.Context, companyID int64) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("company_settings").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - build query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	settings, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: company_id=%d", ErrSettingsNotFound, companyID)
		}
		return nil, err
	}

	return settings, nil
}

// Upsert сохраняет настройки компании, создавая запись при первом сохранении
func (r *Repository) Upsert(ctx context.Context, settings *domain.CompanySettings) (*domain.CompanySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("company_settings").
		Columns(
			"company_id",
			"weekday_start",
			"weekday_end",
			"weekend_start",
			"weekend_end",
			"slot_duration_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			settings.CompanyID,
			settings.WorkHours.WeekdayStart,
			settings.WorkHours.WeekdayEnd,
			settings.WorkHours.WeekendStart,
			settings.WorkHours.WeekendEnd,
			settings.SlotDurationMinutes,
			settings.MinBookingNoticeMinutes,
			settings.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			weekday_start = EXCLUDED.weekday_start,
			weekday_end = EXCLUDED.weekday_end,
			weekend_start = EXCLUDED.weekend_start,
			weekend_end = EXCLUDED.weekend_end,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute query: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettings(row rowScanner) (*domain.CompanySettings, error) {
	var settings domain.CompanySettings
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&settings.ID,
		&settings.CompanyID,
		&settings.WorkHours.WeekdayStart,
		&settings.WorkHours.WeekdayEnd,
		&settings.WorkHours.WeekendStart,
		&settings.WorkHours.WeekendEnd,
		&settings.SlotDurationMinutes,
		&settings.MinBookingNoticeMinutes,
		&settings.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}
