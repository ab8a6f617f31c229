package domain

import "errors"

var (
	// ErrWorkHoursInverted возвращается, когда конец рабочего интервала не позже начала
	ErrWorkHoursInverted = errors.New("domain: work hours end must be after start")
)
