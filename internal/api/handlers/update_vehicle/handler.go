package update_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

const (
	msgInvalidVehicleID   = "некорректный идентификатор автомобиля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgVehicleNotFound    = "автомобиль не найден"
	msgAccessDenied       = "нет доступа к этому автомобилю"
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

// Handle PUT /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /vehicles/{vehicleId} - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	var req models.UpdateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vehicles/{vehicleId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID
	req.VehicleID = vehicleID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, vehiclesService.ErrVehicleNotFound):
			h.logger.Warn("PUT /vehicles/{vehicleId} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, vehiclesService.ErrAccessDenied):
			h.logger.Warn("PUT /vehicles/{vehicleId} - Access denied: vehicle_id=%d, company_id=%d",
				vehicleID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, vehiclesService.ErrInvalidInput):
			h.logger.Warn("PUT /vehicles/{vehicleId} - Invalid input: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /vehicles/{vehicleId} - Failed to update vehicle: vehicle_id=%d, error=%v",
				vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vehicles/{vehicleId} - Vehicle updated: vehicle_id=%d, company_id=%d",
		vehicleID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
