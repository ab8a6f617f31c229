package delete_client

import "context"

// ClientsService контракт сервиса клиентов
type ClientsService interface {
	Delete(ctx context.Context, companyID, clientID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
