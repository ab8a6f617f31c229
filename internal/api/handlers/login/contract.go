package login

import (
	"context"

	authmodels "github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

type AuthService interface {
	Login(ctx context.Context, req *authmodels.LoginRequest) (*authmodels.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
