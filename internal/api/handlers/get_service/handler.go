package get_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	catalogService "github.com/avlebedev/carservice-admin/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgServiceNotFound  = "услуга не найдена"
	msgAccessDenied     = "нет доступа к этой услуге"
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

// Handle GET /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.Get(r.Context(), session.CompanyID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			h.logger.Warn("GET /services/{serviceId} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalogService.ErrAccessDenied):
			h.logger.Warn("GET /services/{serviceId} - Access denied: service_id=%d, company_id=%d",
				serviceID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /services/{serviceId} - Failed to get service: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{serviceId} - Service retrieved: service_id=%d, company_id=%d",
		serviceID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
