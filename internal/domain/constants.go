package domain

import "github.com/avlebedev/carservice-admin/pkg/types"

// Канонические значения по умолчанию
// Единственный источник дефолтов расписания: легаси-страницы держали свои
// копии (15 vs 30 минут, разные выходные часы), здесь зафиксирован один набор
const (
	DefaultSlotDurationMinutes     = 30
	DefaultMinBookingNoticeMinutes = 60
	DefaultAdvanceBookingDays      = 0 // 0 = без ограничения
)

// Дефолтные рабочие часы (будни и выходные)
const (
	DefaultWeekdayStart = types.TimeString("08:00")
	DefaultWeekdayEnd   = types.TimeString("18:00")
	DefaultWeekendStart = types.TimeString("09:00")
	DefaultWeekendEnd   = types.TimeString("17:00")
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxPageLimit                = 100
	DefaultPageLimit            = 20
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// LocalISOFormat явное смещение вместо UTC, чтобы клиент и бэкенд
	// не разъезжались по часовым поясам
	LocalISOFormat = "2006-01-02T15:04:05-07:00"
)

// InactiveStatuses статусы, не занимающие слоты в расписании
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses статусы, занимающие слоты в расписании
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
