package get_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidReference = "некорректный код бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сервис сам проверит права доступа
	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", err, actor)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d, user_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleByReference GET /api/v1/bookings/reference/{reference}
func (h *Handler) HandleByReference(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimSpace(mux.Vars(r)["reference"])
	if reference == "" {
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	actor, ok := actorFromRequest(r)
	if !ok {
		h.logger.Warn("GET /bookings/reference/{reference} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), strings.ToUpper(reference), actor)
	if err != nil {
		h.respondError(w, "GET /bookings/reference/{reference}", err, actor)
		return
	}

	h.logger.Info("GET /bookings/reference/{reference} - Booking retrieved successfully: booking_id=%d, user_id=%d",
		booking.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error, actor models.Actor) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Failed to get booking: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}

func actorFromRequest(r *http.Request) (models.Actor, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())}, true
}
