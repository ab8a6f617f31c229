package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/schedule"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

// validateRequest валидирует черновик бронирования
// Выполняется до любых обращений к хранилищу: неполный черновик
// отклоняется без единого запроса к БД
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID", ErrMissingField)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID", ErrMissingField)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID", ErrMissingField)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: serviceIDs", ErrMissingField)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date", ErrMissingField)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime", ErrMissingField)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(strings.TrimSpace(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if schedule.DateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 - без ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateTimeSlot проверяет, что интервал лежит в рабочих часах
// и начало выровнено по сетке слотов
func validateTimeSlot(
	start types.TimeString,
	totalDuration int,
	workStart, workEnd types.TimeString,
	slotDuration int,
) error {
	if start.IsBefore(workStart) {
		return fmt.Errorf("%w: before opening time", ErrInvalidTimeSlot)
	}

	end, err := start.AddMinutes(totalDuration)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if end.IsAfter(workEnd) {
		return fmt.Errorf("%w: ends after closing time", ErrInvalidTimeSlot)
	}

	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	openMinutes, err := workStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if (startMinutes-openMinutes)%slotDuration != 0 {
		return fmt.Errorf("%w: not aligned to slot grid", ErrInvalidTimeSlot)
	}

	return nil
}

// validateBookingNotice проверяет minBookingNoticeMinutes для записей на сегодня
func validateBookingNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	if !schedule.SameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}
