package settings

import "errors"

var (
	// ErrInvalidWorkHours возвращается, когда конец рабочего интервала не позже начала
	ErrInvalidWorkHours = errors.New("settings: invalid work hours")

	// ErrInvalidSlotDuration возвращается при недопустимой длительности слота
	ErrInvalidSlotDuration = errors.New("settings: invalid slot duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
