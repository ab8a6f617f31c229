package create_service

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	catalogService "github.com/avlebedev/carservice-admin/internal/service/catalog"
	"github.com/avlebedev/carservice-admin/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные параметры услуги"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidService)

		default:
			h.logger.Error("POST /services - Failed to create service: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, company_id=%d",
		result.ID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
