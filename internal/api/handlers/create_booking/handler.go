package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/discount"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgSalonClosed        = "мастер не работает в выбранную дату"
	msgOutsideHours       = "время бронирования вне рабочих часов"
	msgInPast             = "нельзя забронировать прошедшее время"
	msgTooLateToBook      = "слишком поздно для бронирования этого времени"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSlotConflict       = "мастер занят в выбранное время"
	msgCouponInvalid      = "купон не может быть применен"
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
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, customerID, &req)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, customer_id=%d, staff_id=%d",
		result.ID, result.Reference, customerID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, customerID int64, req *CreateBookingRequest) {
	switch {
	case errors.Is(err, createBooking.ErrSlotConflict):
		details := ConflictDetails{}
		var conflict *scheduling.ConflictError
		if errors.As(err, &conflict) {
			details.ConflictingBookingIDs = conflict.ConflictingIDs
		}
		h.logger.Warn("POST /bookings - Slot conflict: customer_id=%d, staff_id=%d, conflicts=%v",
			customerID, req.StaffID, details.ConflictingBookingIDs)
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotConflict, details)

	case errors.Is(err, createBooking.ErrCouponInvalid):
		reason, _ := discount.ReasonOf(err)
		h.logger.Warn("POST /bookings - Coupon rejected: customer_id=%d, reason=%s", customerID, reason)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgCouponInvalid, CouponDetails{Reason: string(reason)})

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrServiceInactive):
		handlers.RespondBadRequest(w, msgServiceInactive)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrInvalidInterval):
		handlers.RespondBadRequest(w, msgInvalidInterval)

	case errors.Is(err, createBooking.ErrSalonClosed):
		handlers.RespondBadRequest(w, msgSalonClosed)

	case errors.Is(err, createBooking.ErrOutsideBusinessHours):
		handlers.RespondBadRequest(w, msgOutsideHours)

	case errors.Is(err, createBooking.ErrInPast):
		handlers.RespondBadRequest(w, msgInPast)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		handlers.RespondBadRequest(w, msgTooLateToBook)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		handlers.RespondBadRequest(w, msgDateTooFar)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, staff_id=%d, error=%v",
			customerID, req.StaffID, err)
		handlers.RespondInternalError(w)
	}
}
