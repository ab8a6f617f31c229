package update_company_settings

import (
	"context"

	"github.com/avlebedev/carservice-admin/internal/service/settings/models"
)

type SettingsService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
