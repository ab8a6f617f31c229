package get_vehicles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
)

const (
	msgInvalidClientID = "некорректный идентификатор клиента"
	msgClientNotFound  = "клиент не найден"
	msgAccessDenied    = "нет доступа к этому клиенту"
)

type Handler struct {
	service VehiclesService
	logger  Logger
}

func NewHandler(service VehiclesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles?clientId=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	clientID, err := strconv.ParseInt(r.URL.Query().Get("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		h.logger.Warn("GET /vehicles - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.service.ListByClient(r.Context(), session.CompanyID, clientID)
	if err != nil {
		switch {
		case errors.Is(err, vehiclesService.ErrClientNotFound):
			h.logger.Warn("GET /vehicles - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, vehiclesService.ErrAccessDenied):
			h.logger.Warn("GET /vehicles - Access denied: client_id=%d, company_id=%d",
				clientID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /vehicles - Failed to list vehicles: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles - Vehicles listed: client_id=%d, count=%d",
		clientID, len(result.Vehicles))
	handlers.RespondJSON(w, http.StatusOK, result)
}
