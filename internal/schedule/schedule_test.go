package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

var testHours = domain.WorkHours{
	WeekdayStart: "08:00",
	WeekdayEnd:   "18:00",
	WeekendStart: "09:00",
	WeekendEnd:   "17:00",
}

// 2025-10-29 - среда, 2025-11-01 - суббота
var (
	wednesday = time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
)

func booking(id int64, start types.TimeString, durations ...int) *domain.Booking {
	services := make([]domain.BookingService, len(durations))
	for i, d := range durations {
		services[i] = domain.BookingService{
			ServiceID:       int64(i + 1),
			Name:            "Услуга",
			DurationMinutes: d,
		}
	}
	return &domain.Booking{
		ID:         id,
		StartTime:  start,
		Services:   services,
		Status:     domain.StatusConfirmed,
		ClientName: "Иванов",
	}
}

func TestGenerate_Weekday(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	// 08:00-18:00 с шагом 30 минут: 20 слотов, первый 08:00, последний 17:30
	require.Len(t, slots, 20)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "17:30", slots[len(slots)-1].String())
}

func TestGenerate_Weekend(t *testing.T) {
	slots, err := Generate(testHours, saturday, 30)
	require.NoError(t, err)

	// Выходные часы 09:00-17:00: 16 слотов
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "16:30", slots[len(slots)-1].String())
}

func TestGenerate_StrictlyIncreasingByStep(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 15)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	prev, err := slots[0].Minutes()
	require.NoError(t, err)
	for _, slot := range slots[1:] {
		cur, err := slot.Minutes()
		require.NoError(t, err)
		assert.Equal(t, prev+15, cur)
		prev = cur
	}

	// Последний слот строго раньше закрытия
	last := slots[len(slots)-1]
	assert.True(t, last.IsBefore("18:00"))
}

func TestGenerate_SlotOverrunningCloseExcluded(t *testing.T) {
	hours := domain.WorkHours{
		WeekdayStart: "08:00",
		WeekdayEnd:   "09:10",
		WeekendStart: "09:00",
		WeekendEnd:   "17:00",
	}

	slots, err := Generate(hours, wednesday, 30)
	require.NoError(t, err)

	// 09:00 начинается до закрытия, но его конец 09:30 выходит за 09:10
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "08:30", slots[1].String())
}

func TestFilterByNotice_PastDate(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	now := time.Date(2025, 10, 30, 10, 0, 0, 0, time.UTC)
	filtered, err := FilterByNotice(slots, wednesday, now, 60)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestFilterByNotice_Today(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	// Сейчас 10:05, минимальное уведомление 60 минут: первый допустимый слот 11:30
	now := time.Date(2025, 10, 29, 10, 5, 0, 0, time.UTC)
	filtered, err := FilterByNotice(slots, wednesday, now, 60)
	require.NoError(t, err)

	require.NotEmpty(t, filtered)
	assert.Equal(t, "11:30", filtered[0].String())
}

func TestFilterByNotice_FutureDateUnchanged(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	now := time.Date(2025, 10, 20, 23, 0, 0, 0, time.UTC)
	filtered, err := FilterByNotice(slots, wednesday, now, 60)
	require.NoError(t, err)
	assert.Equal(t, slots, filtered)
}

func TestMapOccupancy_NinetyMinuteBooking(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	// Бронирование 09:00 на 90 минут (две услуги: 60 + 30)
	bookings := []*domain.Booking{booking(7, "09:00", 60, 30)}

	annotated, err := MapOccupancy(slots, 30, bookings)
	require.NoError(t, err)
	require.Len(t, annotated, 20)

	byTime := make(map[string]domain.ScheduleSlot)
	for _, s := range annotated {
		byTime[s.StartTime.String()] = s
	}

	// Заняты 09:00 (начало), 09:30 и 10:00 (продолжение)
	assert.False(t, byTime["09:00"].Available)
	assert.True(t, byTime["09:00"].IsStart)
	assert.False(t, byTime["09:00"].IsContinuation)

	for _, ts := range []string{"09:30", "10:00"} {
		s := byTime[ts]
		assert.False(t, s.Available, ts)
		assert.False(t, s.IsStart, ts)
		assert.True(t, s.IsContinuation, ts)
		require.NotNil(t, s.BookingID, ts)
		assert.Equal(t, int64(7), *s.BookingID, ts)
	}

	// Слот ровно в конце бронирования (10:30) свободен: интервалы полуоткрытые
	end := byTime["10:30"]
	assert.True(t, end.Available)
	assert.False(t, end.IsStart)
	assert.False(t, end.IsContinuation)
	assert.Nil(t, end.BookingID)

	// Соседний свободный слот не затронут
	assert.True(t, byTime["08:30"].Available)
}

func TestMapOccupancy_PartialSlotOverlap(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	// 45 минут с 12:00: занимает 12:00 и 12:30 (пересечение 12:30-12:45)
	bookings := []*domain.Booking{booking(3, "12:00", 45)}

	annotated, err := MapOccupancy(slots, 30, bookings)
	require.NoError(t, err)

	byTime := make(map[string]domain.ScheduleSlot)
	for _, s := range annotated {
		byTime[s.StartTime.String()] = s
	}

	assert.False(t, byTime["12:00"].Available)
	assert.True(t, byTime["12:00"].IsStart)
	assert.False(t, byTime["12:30"].Available)
	assert.True(t, byTime["12:30"].IsContinuation)
	assert.True(t, byTime["13:00"].Available)
}

func TestMapOccupancy_CancelledBookingIgnored(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	cancelled := booking(1, "11:00", 60)
	cancelled.Status = domain.StatusCancelled

	annotated, err := MapOccupancy(slots, 30, []*domain.Booking{cancelled})
	require.NoError(t, err)

	for _, s := range annotated {
		assert.True(t, s.Available, s.StartTime.String())
	}
}

func TestMapOccupancy_FirstMatchWins(t *testing.T) {
	slots := []types.TimeString{"10:00"}

	first := booking(1, "10:00", 30)
	second := booking(2, "10:00", 30)

	annotated, err := MapOccupancy(slots, 30, []*domain.Booking{first, second})
	require.NoError(t, err)
	require.Len(t, annotated, 1)
	require.NotNil(t, annotated[0].BookingID)
	assert.Equal(t, int64(1), *annotated[0].BookingID)
}

func TestMapOccupancy_CarriesBookingMetadata(t *testing.T) {
	slots := []types.TimeString{"10:00"}
	b := booking(5, "10:00", 30)
	b.Services[0].Name = "Замена масла"

	annotated, err := MapOccupancy(slots, 30, []*domain.Booking{b})
	require.NoError(t, err)
	require.NotNil(t, annotated[0].ClientName)
	assert.Equal(t, "Иванов", *annotated[0].ClientName)
	assert.Equal(t, []string{"Замена масла"}, annotated[0].ServiceNames)
}

func TestFreeStarts(t *testing.T) {
	slots, err := Generate(testHours, wednesday, 30)
	require.NoError(t, err)

	// Занято 09:00-10:30
	bookings := []*domain.Booking{booking(1, "09:00", 90)}

	free, err := FreeStarts(slots, "18:00", 60, bookings)
	require.NoError(t, err)

	freeSet := make(map[string]bool)
	for _, s := range free {
		freeSet[s.String()] = true
	}

	// 08:00 пересекается с бронированием (08:00+60 > 09:00)? Нет: 08:00-09:00 граничит с 09:00
	assert.True(t, freeSet["08:00"])
	// 08:30-09:30 пересекается
	assert.False(t, freeSet["08:30"])
	// Внутри бронирования занято
	assert.False(t, freeSet["09:00"])
	assert.False(t, freeSet["10:00"])
	// 10:30 - конец бронирования, часовая запись 10:30-11:30 свободна
	assert.True(t, freeSet["10:30"])
	// 17:30 не попадает: час не помещается до закрытия 18:00
	assert.False(t, freeSet["17:30"])
	// 17:00 ровно до закрытия - помещается
	assert.True(t, freeSet["17:00"])
}

func TestHasConflict(t *testing.T) {
	bookings := []*domain.Booking{booking(1, "09:00", 90)}

	conflict, err := HasConflict("10:00", 30, bookings)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Граница конца бронирования не считается пересечением
	conflict, err = HasConflict("10:30", 30, bookings)
	require.NoError(t, err)
	assert.False(t, conflict)

	// Граница начала бронирования не считается пересечением
	conflict, err = HasConflict("08:00", 60, bookings)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestDateHelpers(t *testing.T) {
	assert.True(t, SameDay(wednesday, wednesday.Add(23*time.Hour)))
	assert.False(t, SameDay(wednesday, saturday))

	now := time.Date(2025, 10, 30, 0, 0, 1, 0, time.UTC)
	assert.True(t, DateInPast(wednesday, now))
	assert.False(t, DateInPast(saturday, now))
	assert.False(t, DateInPast(now, now))
}
