package loyalty

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("loyalty: client not found")

	// ErrAccessDenied возвращается при обращении к клиенту чужой компании
	ErrAccessDenied = errors.New("loyalty: access denied")

	// ErrInsufficientPoints возвращается, когда на балансе не хватает баллов
	ErrInsufficientPoints = errors.New("loyalty: insufficient points")

	// ErrDuplicateOperation возвращается при повторе операции с тем же ключом
	ErrDuplicateOperation = errors.New("loyalty: duplicate operation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("loyalty: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("loyalty: internal error")
)
