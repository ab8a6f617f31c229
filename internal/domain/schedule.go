package domain

import "github.com/avlebedev/carservice-admin/pkg/types"

// ScheduleSlot слот дневной сетки расписания с аннотацией занятости
// Для занятого слота ровно один из флагов IsStart/IsContinuation истинен;
// для свободного оба ложны
type ScheduleSlot struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	Available      bool
	BookingID      *int64
	ClientName     *string
	ServiceNames   []string
	IsStart        bool
	IsContinuation bool
}

// AvailableSlot свободное время начала для новой записи
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}
