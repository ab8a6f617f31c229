package get_services

import (
	"net/http"
	"strconv"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
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

// Handle GET /api/v1/services?onlyActive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	// По умолчанию отдаём только активные услуги, админка может запросить все
	onlyActive := true
	if raw := r.URL.Query().Get("onlyActive"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			onlyActive = parsed
		}
	}

	result, err := h.service.List(r.Context(), session.CompanyID, onlyActive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: company_id=%d, error=%v",
			session.CompanyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed: company_id=%d, count=%d",
		session.CompanyID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
