package vehicles

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicles: vehicle not found")

	// ErrClientNotFound возвращается, когда владелец не найден
	ErrClientNotFound = errors.New("vehicles: client not found")

	// ErrAccessDenied возвращается при обращении к автомобилю чужой компании
	ErrAccessDenied = errors.New("vehicles: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("vehicles: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("vehicles: internal error")
)
