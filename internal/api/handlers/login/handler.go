package login

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	authService "github.com/avlebedev/carservice-admin/internal/service/auth"
	authmodels "github.com/avlebedev/carservice-admin/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный email или пароль"
)

type Handler struct {
	auth   AuthService
	logger Logger
}

func NewHandler(auth AuthService, logger Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req authmodels.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials),
			errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("POST /auth/login - Invalid credentials for email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Login failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - User id=%d logged in", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
