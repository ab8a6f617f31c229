package logout

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	authService "github.com/avlebedev/carservice-admin/internal/service/auth"
)

const msgInvalidToken = "невалидный токен"

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

// Handle POST /api/v1/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

	if err := h.auth.Logout(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidToken):
			h.logger.Warn("POST /auth/logout - Invalid token")
			handlers.RespondUnauthorized(w, msgInvalidToken)

		default:
			h.logger.Error("POST /auth/logout - Logout failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/logout - Session revoked")
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
