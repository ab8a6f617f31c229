package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken возвращается при невалидном или отозванном токене
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
