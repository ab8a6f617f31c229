package models

import (
	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// WorkHoursPayload рабочие часы в запросах и ответах
type WorkHoursPayload struct {
	WeekdayStart string `json:"weekdayStart"` // "08:00"
	WeekdayEnd   string `json:"weekdayEnd"`   // "18:00"
	WeekendStart string `json:"weekendStart"` // "09:00"
	WeekendEnd   string `json:"weekendEnd"`   // "17:00"
}

// UpdateSettingsRequest запрос на обновление настроек компании
type UpdateSettingsRequest struct {
	CompanyID               int64            `json:"-"`
	WorkHours               WorkHoursPayload `json:"workHours"`
	SlotDurationMinutes     int              `json:"slotDurationMinutes"`
	MinBookingNoticeMinutes int              `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int              `json:"advanceBookingDays"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpdateSettingsRequest) ToDomain() *domain.CompanySettings {
	return &domain.CompanySettings{
		CompanyID: r.CompanyID,
		WorkHours: domain.WorkHours{
			WeekdayStart: types.TimeString(r.WorkHours.WeekdayStart),
			WeekdayEnd:   types.TimeString(r.WorkHours.WeekdayEnd),
			WeekendStart: types.TimeString(r.WorkHours.WeekendStart),
			WeekendEnd:   types.TimeString(r.WorkHours.WeekendEnd),
		},
		SlotDurationMinutes:     r.SlotDurationMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// SettingsResponse ответ с настройками компании
type SettingsResponse struct {
	CompanyID               int64            `json:"companyId"`
	WorkHours               WorkHoursPayload `json:"workHours"`
	SlotDurationMinutes     int              `json:"slotDurationMinutes"`
	MinBookingNoticeMinutes int              `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int              `json:"advanceBookingDays"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CompanySettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		CompanyID: s.CompanyID,
		WorkHours: WorkHoursPayload{
			WeekdayStart: s.WorkHours.WeekdayStart.String(),
			WeekdayEnd:   s.WorkHours.WeekdayEnd.String(),
			WeekendStart: s.WorkHours.WeekendStart.String(),
			WeekendEnd:   s.WorkHours.WeekendEnd.String(),
		},
		SlotDurationMinutes:     s.SlotDurationMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
}
