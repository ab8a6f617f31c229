package get_loyalty_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	loyaltyService "github.com/avlebedev/carservice-admin/internal/service/loyalty"
)

const (
	msgInvalidClientID = "некорректный идентификатор клиента"
	msgClientNotFound  = "клиент не найден"
	msgAccessDenied    = "нет доступа к этому клиенту"
)

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/loyalty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{clientId}/loyalty - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.service.History(r.Context(), session.CompanyID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, loyaltyService.ErrClientNotFound):
			h.logger.Warn("GET /clients/{clientId}/loyalty - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, loyaltyService.ErrAccessDenied):
			h.logger.Warn("GET /clients/{clientId}/loyalty - Access denied: client_id=%d, company_id=%d",
				clientID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /clients/{clientId}/loyalty - Failed to get history: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{clientId}/loyalty - History retrieved: client_id=%d, transactions=%d",
		clientID, len(result.Transactions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
