package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	catalogService "github.com/avlebedev/carservice-admin/internal/service/catalog"
	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный идентификатор услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные параметры услуги"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "нет доступа к этой услуге"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{serviceId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID
	req.ServiceID = serviceID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{serviceId} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalogService.ErrAccessDenied):
			h.logger.Warn("PUT /services/{serviceId} - Access denied: service_id=%d, company_id=%d",
				serviceID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("PUT /services/{serviceId} - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("PUT /services/{serviceId} - Failed to update service: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{serviceId} - Service updated: service_id=%d, company_id=%d",
		serviceID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
