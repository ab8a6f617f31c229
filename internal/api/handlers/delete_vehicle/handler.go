package delete_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
)

const (
	msgInvalidVehicleID = "некорректный идентификатор автомобиля"
	msgVehicleNotFound  = "автомобиль не найден"
	msgAccessDenied     = "нет доступа к этому автомобилю"
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

// Handle DELETE /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /vehicles/{vehicleId} - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	if err := h.service.Delete(r.Context(), session.CompanyID, vehicleID); err != nil {
		switch {
		case errors.Is(err, vehiclesService.ErrVehicleNotFound):
			h.logger.Warn("DELETE /vehicles/{vehicleId} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, vehiclesService.ErrAccessDenied):
			h.logger.Warn("DELETE /vehicles/{vehicleId} - Access denied: vehicle_id=%d, company_id=%d",
				vehicleID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /vehicles/{vehicleId} - Failed to delete vehicle: vehicle_id=%d, error=%v",
				vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vehicles/{vehicleId} - Vehicle deleted: vehicle_id=%d, company_id=%d",
		vehicleID, session.CompanyID)
	w.WriteHeader(http.StatusNoContent)
}
