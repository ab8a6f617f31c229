package get_company_bookings

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	bookingsService "github.com/avlebedev/carservice-admin/internal/service/bookings"
)

const msgInvalidFilter = "некорректные параметры фильтрации"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	req, err := parseQuery(session.CompanyID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: company_id=%d, error=%v", session.CompanyID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetCompanyBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
