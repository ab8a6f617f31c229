package clients

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("clients: client not found")

	// ErrAccessDenied возвращается при обращении к клиенту чужой компании
	ErrAccessDenied = errors.New("clients: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("clients: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("clients: internal error")
)
