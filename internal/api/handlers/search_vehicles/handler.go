package search_vehicles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	vehiclesService "github.com/avlebedev/carservice-admin/internal/service/vehicles"
	"github.com/avlebedev/carservice-admin/internal/service/vehicles/models"
)

const msgInvalidQuery = "требуется параметр query с частью госномера"

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

// Handle GET /api/v1/vehicles/search?query=A123&limit=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	req := &models.SearchVehiclesRequest{
		CompanyID: session.CompanyID,
		Query:     r.URL.Query().Get("query"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil {
			req.Limit = parsed
		}
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, vehiclesService.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/search - Invalid query: company_id=%d", session.CompanyID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /vehicles/search - Failed: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
