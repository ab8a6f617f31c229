// Package schedule содержит чистую логику дневной сетки расписания:
// генерацию слотов из рабочих часов и разметку занятости по бронированиям.
// Это единственное место с этой логикой - страницы дашборда, легаси-список и
// модалка записи держали по своей копии, здесь они сведены в один модуль.
package schedule

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// Generate генерирует упорядоченный список слотов на день
// Слоты идут от начала работы с фиксированным шагом slotDuration; слот,
// конец которого выходит за время закрытия, не включается
func Generate(hours domain.WorkHours, date time.Time, slotDuration int) ([]types.TimeString, error) {
	openTime, closeTime := hours.ForDate(date)

	if err := openTime.Validate(); err != nil {
		return nil, err
	}
	if err := closeTime.Validate(); err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}

// FilterByNotice отбрасывает слоты, нарушающие минимальное время до записи
// Применяется только если запрошенная дата - сегодня; прошедшие даты дают
// пустой список
func FilterByNotice(slots []types.TimeString, date, now time.Time, noticeMinutes int) ([]types.TimeString, error) {
	if DateInPast(date, now) {
		return []types.TimeString{}, nil
	}
	if !SameDay(date, now) {
		return slots, nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(noticeMinutes)
	if err != nil {
		return nil, err
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(minAllowed) {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}

// MapOccupancy размечает слоты по бронированиям дня
// Слот занят, если его интервал пересекается с интервалом бронирования
// [start, start+totalDuration). Интервалы полуоткрытые со строгими
// неравенствами: граничащие интервалы не пересекаются, поэтому слот ровно
// в конце бронирования свободен. Первое подходящее бронирование выигрывает.
func MapOccupancy(slots []types.TimeString, slotDuration int, bookings []*domain.Booking) ([]domain.ScheduleSlot, error) {
	result := make([]domain.ScheduleSlot, 0, len(slots))

	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(slotDuration)
		if err != nil {
			return nil, err
		}

		annotated := domain.ScheduleSlot{
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: true,
		}

		if b := findOccupying(slotStart, slotEnd, bookings); b != nil {
			annotated.Available = false
			annotated.BookingID = &b.ID
			annotated.ClientName = &b.ClientName
			annotated.ServiceNames = b.ServiceNames()
			if slotStart == b.StartTime {
				annotated.IsStart = true
			} else {
				annotated.IsContinuation = true
			}
		}

		result = append(result, annotated)
	}

	return result, nil
}

// FreeStarts возвращает времена начала, в которые запись суммарной длительностью
// requiredDuration полностью помещается до закрытия и не пересекается с
// существующими бронированиями
func FreeStarts(slots []types.TimeString, closeTime types.TimeString, requiredDuration int, bookings []*domain.Booking) ([]types.TimeString, error) {
	free := make([]types.TimeString, 0, len(slots))

	for _, start := range slots {
		end, err := start.AddMinutes(requiredDuration)
		if err != nil {
			// Запись вышла бы за пределы суток
			continue
		}
		if end.IsAfter(closeTime) {
			continue
		}

		conflict, err := HasConflict(start, requiredDuration, bookings)
		if err != nil {
			return nil, err
		}
		if !conflict {
			free = append(free, start)
		}
	}

	return free, nil
}

// HasConflict проверяет, пересекается ли интервал [start, start+duration)
// с каким-либо активным бронированием
func HasConflict(start types.TimeString, duration int, bookings []*domain.Booking) (bool, error) {
	end, err := start.AddMinutes(duration)
	if err != nil {
		return false, err
	}

	return findOccupying(start, end, bookings) != nil, nil
}

// findOccupying возвращает первое активное бронирование, пересекающееся
// со слотом [slotStart, slotEnd), либо nil
func findOccupying(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.EndTime()
		if err != nil {
			// Бронирование с некорректным временем не занимает ничего
			continue
		}

		// Пересечение полуоткрытых интервалов: строгие неравенства,
		// граничные случаи не считаются пересечением
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return booking
		}
	}
	return nil
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func DateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
