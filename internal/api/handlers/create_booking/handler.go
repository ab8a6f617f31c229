package create_booking

import (
	"errors"
	"net/http"

	"github.com/avlebedev/carservice-admin/internal/api/handlers"
	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	createBooking "github.com/avlebedev/carservice-admin/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingField       = "заполнены не все обязательные поля"
	msgSlotNotAvailable   = "выбранный временной интервал занят"
	msgClientNotFound     = "клиент не найден"
	msgVehicleNotFound    = "автомобиль не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgVehicleOwner       = "автомобиль принадлежит другому клиенту"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для записи на это время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(session.CompanyID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingField):
			h.logger.Warn("POST /bookings - Missing field: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgMissingField)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: company_id=%d, time=%s",
				session.CompanyID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: company_id=%d, client_id=%d",
				session.CompanyID, req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: company_id=%d, vehicle_id=%d",
				session.CompanyID, req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: company_id=%d", session.CompanyID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrVehicleOwnerMismatch):
			h.logger.Warn("POST /bookings - Vehicle owner mismatch: company_id=%d, vehicle_id=%d",
				session.CompanyID, req.VehicleID)
			handlers.RespondBadRequest(w, msgVehicleOwner)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: company_id=%d, date=%s",
				session.CompanyID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: company_id=%d, date=%s",
				session.CompanyID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: company_id=%d, time=%s",
				session.CompanyID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: company_id=%d, time=%s",
				session.CompanyID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: company_id=%d, error=%v", session.CompanyID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: company_id=%d, error=%v",
				session.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, company_id=%d",
		result.ID, session.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
