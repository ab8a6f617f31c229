package update_company_settings

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	settingsService "github.com/avlebedev/carservice-admin/internal/service/settings"
	"github.com/avlebedev/carservice-admin/internal/service/settings/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWorkHours    = "время окончания работы должно быть позже времени начала"
	msgInvalidSlotDuration = "недопустимая длительность слота"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID

	result, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrInvalidWorkHours):
			h.logger.Warn("PUT /settings - Invalid work hours: company_id=%d", session.CompanyID)
			handlers.RespondBadRequest(w, msgInvalidWorkHours)

		case errors.Is(err, settingsService.ErrInvalidSlotDuration):
			h.logger.Warn("PUT /settings - Invalid slot duration: company_id=%d", session.CompanyID)
			handlers.RespondBadRequest(w, msgInvalidSlotDuration)

		case errors.Is(err, settingsService.ErrInvalidInput):
			h.logger.Warn("PUT /settings - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /settings - Failed to update settings: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings - Settings updated: company_id=%d", session.CompanyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
