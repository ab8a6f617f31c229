package get_clients

import (
	"net/http"
	"strconv"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	"github.com/avlebedev/carservice-admin/internal/service/clients/models"
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

// Handle GET /api/v1/clients?query=иван&page=1&limit=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	req := parseQuery(r)
	req.CompanyID = session.CompanyID

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /clients - Failed to list clients: company_id=%d, error=%v",
			session.CompanyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients - Clients listed: company_id=%d, total=%d",
		session.CompanyID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) *models.ListClientsRequest {
	q := r.URL.Query()

	req := &models.ListClientsRequest{
		Query: q.Get("query"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		req.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}

	return req
}
