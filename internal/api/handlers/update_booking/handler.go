package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	updateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "укажите новое время или мастера"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "бронирование нельзя перенести"
	msgSalonClosed        = "мастер не работает в выбранную дату"
	msgOutsideHours       = "время бронирования вне рабочих часов"
	msgInPast             = "нельзя перенести на прошедшее время"
	msgTooLateToBook      = "слишком поздно для бронирования этого времени"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSlotConflict       = "мастер занят в выбранное время"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrSlotConflict):
			details := ConflictDetails{}
			var conflict *scheduling.ConflictError
			if errors.As(err, &conflict) {
				details.ConflictingBookingIDs = conflict.ConflictingIDs
			}
			h.logger.Warn("PATCH /bookings/{id} - Slot conflict: booking_id=%d, conflicts=%v",
				bookingID, details.ConflictingBookingIDs)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotConflict, details)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrCannotReschedule):
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrSalonClosed):
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, updateBooking.ErrOutsideBusinessHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, updateBooking.ErrInPast):
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, updateBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, updateBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated: booking_id=%d, staff_id=%d, rescheduled=%t",
		result.ID, result.StaffID, result.Rescheduled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
