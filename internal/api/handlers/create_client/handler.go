package create_client

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	clientsService "github.com/avlebedev/carservice-admin/internal/service/clients"
	"github.com/avlebedev/carservice-admin/internal/service/clients/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service ClientsService
	logger  Logger
}

func NewHandler(service ClientsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, clientsService.ErrInvalidInput):
			h.logger.Warn("POST /clients - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /clients - Failed to create client: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients - Client created: client_id=%d, company_id=%d",
		result.ID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
