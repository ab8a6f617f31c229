package settings

import (
	"context"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек компании
type SettingsRepository interface {
	GetByCompany(ctx context.Context, companyID int64) (*domain.CompanySettings, error)
	Upsert(ctx context.Context, settings *domain.CompanySettings) (*domain.CompanySettings, error)
}

// SettingsCache интерфейс кэша настроек
type SettingsCache interface {
	GetCompanySettings(ctx context.Context, companyID int64) (*domain.CompanySettings, error)
	SetCompanySettings(ctx context.Context, settings *domain.CompanySettings, ttl time.Duration) error
	InvalidateCompanySettings(ctx context.Context, companyID int64) error
	InvalidateSchedule(ctx context.Context, companyID int64, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
