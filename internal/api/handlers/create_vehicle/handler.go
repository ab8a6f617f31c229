package create_vehicle

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClientNotFound     = "клиент не найден"
	msgAccessDenied       = "нет доступа к этому клиенту"
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

// Handle POST /api/v1/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req models.CreateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, vehiclesService.ErrClientNotFound):
			h.logger.Warn("POST /vehicles - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, vehiclesService.ErrAccessDenied):
			h.logger.Warn("POST /vehicles - Access denied: client_id=%d, company_id=%d",
				req.ClientID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, vehiclesService.ErrInvalidInput):
			h.logger.Warn("POST /vehicles - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /vehicles - Failed to create vehicle: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vehicles - Vehicle created: vehicle_id=%d, company_id=%d",
		result.ID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
