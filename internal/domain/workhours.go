package domain

import (
	"time"

	"github.com/avlebedev/carservice-admin/pkg/types"
)

// WorkHours рабочие часы компании: отдельные интервалы для будней и выходных
type WorkHours struct {
	WeekdayStart types.TimeString
	WeekdayEnd   types.TimeString
	WeekendStart types.TimeString
	WeekendEnd   types.TimeString
}

// DefaultWorkHours канонические рабочие часы, используются при отсутствии настроек
func DefaultWorkHours() WorkHours {
	return WorkHours{
		WeekdayStart: DefaultWeekdayStart,
		WeekdayEnd:   DefaultWeekdayEnd,
		WeekendStart: DefaultWeekendStart,
		WeekendEnd:   DefaultWeekendEnd,
	}
}

// ForDate возвращает интервал работы (start, end) на указанную дату
func (w WorkHours) ForDate(date time.Time) (types.TimeString, types.TimeString) {
	if IsWeekend(date) {
		return w.WeekendStart, w.WeekendEnd
	}
	return w.WeekdayStart, w.WeekdayEnd
}

// Validate проверяет, что оба интервала корректны и конец позже начала
func (w WorkHours) Validate() error {
	pairs := []struct {
		start, end types.TimeString
	}{
		{w.WeekdayStart, w.WeekdayEnd},
		{w.WeekendStart, w.WeekendEnd},
	}

	for _, p := range pairs {
		if err := p.start.Validate(); err != nil {
			return err
		}
		if err := p.end.Validate(); err != nil {
			return err
		}
		if !p.start.IsBefore(p.end) {
			return ErrWorkHoursInverted
		}
	}
	return nil
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// CompanySettings настройки компании: рабочие часы и параметры слотов
type CompanySettings struct {
	ID                      int64
	CompanyID               int64
	WorkHours               WorkHours
	SlotDurationMinutes     int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничения
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultCompanySettings настройки по умолчанию для компании без записи в БД
func DefaultCompanySettings(companyID int64) *CompanySettings {
	return &CompanySettings{
		CompanyID:               companyID,
		WorkHours:               DefaultWorkHours(),
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *CompanySettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
