package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	"github.com/avlebedev/carservice-admin/internal/domain"
	getAvailableSlots "github.com/avlebedev/carservice-admin/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServices = "некорректный список услуг"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots?date=YYYY-MM-DD&serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDs, err := parseServiceIDs(r.URL.Query().Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid serviceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServices)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CompanyID:  session.CompanyID,
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability/slots - Service not found: company_id=%d", session.CompanyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidServices)

		default:
			h.logger.Error("GET /availability/slots - Failed: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseServiceIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("serviceIds is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
