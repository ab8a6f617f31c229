package redeem_points

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	loyaltyService "github.com/avlebedev/carservice-admin/internal/service/loyalty"
	"github.com/avlebedev/carservice-admin/internal/service/loyalty/models"
)

const (
	msgInvalidClientID    = "некорректный идентификатор клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgClientNotFound     = "клиент не найден"
	msgAccessDenied       = "нет доступа к этому клиенту"
	msgInsufficientPoints = "недостаточно баллов на балансе"
	msgDuplicateOperation = "операция с таким ключом уже выполнена"
)

type Handler struct {
	service LoyaltyService
	logger  Logger
}

func NewHandler(service LoyaltyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients/{clientId}/loyalty/redeem
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	clientID, err := strconv.ParseInt(mux.Vars(r)["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var req models.RedeemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CompanyID = session.CompanyID
	req.ClientID = clientID

	result, err := h.service.Redeem(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, loyaltyService.ErrClientNotFound):
			h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, loyaltyService.ErrAccessDenied):
			h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Access denied: client_id=%d, company_id=%d",
				clientID, session.CompanyID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, loyaltyService.ErrInsufficientPoints):
			h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Insufficient points: client_id=%d, points=%d",
				clientID, req.Points)
			handlers.RespondError(w, http.StatusConflict, msgInsufficientPoints)

		case errors.Is(err, loyaltyService.ErrDuplicateOperation):
			h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Duplicate operation: client_id=%d, key=%s",
				clientID, req.IdempotencyKey)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateOperation)

		case errors.Is(err, loyaltyService.ErrInvalidInput):
			h.logger.Warn("POST /clients/{clientId}/loyalty/redeem - Invalid input: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /clients/{clientId}/loyalty/redeem - Failed to redeem points: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/{clientId}/loyalty/redeem - Points redeemed: client_id=%d, points=%d, balance=%d",
		clientID, req.Points, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
