package delete_client

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	clientsService "github.com/avlebedev/carservice-admin/internal/service/clients"
)

const (
	msgInvalidClientID = "некорректный идентификатор клиента"
	msgClientNotFound  = "клиент не найден"
	msgAccessDenied    = "нет доступа к этому клиенту"
)

type Handler struct {
	service ClientsService
	logger  Logger
}

func NewHandler(service ClientsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/clients/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /clients/{clientId} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	if err := h.service.Delete(r.Context(), session.CompanyID, clientID); err != nil {
		switch {
		case errors.Is(err, clientsService.ErrClientNotFound):
			h.logger.Warn("DELETE /clients/{clientId} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clientsService.ErrAccessDenied):
			h.logger.Warn("DELETE /clients/{clientId} - Access denied: client_id=%d, company_id=%d",
				clientID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /clients/{clientId} - Failed to delete client: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /clients/{clientId} - Client deleted: client_id=%d, company_id=%d",
		clientID, session.CompanyID)
	w.WriteHeader(http.StatusNoContent)
}
