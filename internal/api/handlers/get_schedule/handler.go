package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	"github.com/avlebedev/carservice-admin/internal/domain"
	getSchedule "github.com/avlebedev/carservice-admin/internal/usecase/get_schedule"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/schedule?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	// Без параметра показываем сегодняшний день
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /availability/schedule - Invalid date=%s: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{
		CompanyID: session.CompanyID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /availability/schedule - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/schedule - Failed to build schedule: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
