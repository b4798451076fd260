package manage_coupons

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/coupons"
	"github.com/m04kA/SMC-SalonService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCode        = "код купона обязателен"
	msgMissingIsActive    = "поле isActive обязательно"
	msgNotFound           = "купон не найден"
	msgAlreadyExists      = "купон с таким кодом уже существует"
	msgInvalidData        = "некорректные данные купона"
)

// Handler управление купонами (только для администраторов)
type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/coupons
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /coupons", err)
		return
	}

	h.logger.Info("POST /coupons - Coupon created successfully: coupon_id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET /api/v1/coupons/{code}
// Ответ содержит число использований купона
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		h.respondError(w, "GET /coupons/{code}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSetActive PATCH /api/v1/coupons/{code}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /coupons/{code}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsActive == nil {
		handlers.RespondBadRequest(w, msgMissingIsActive)
		return
	}

	result, err := h.service.SetActive(r.Context(), code, *req.IsActive)
	if err != nil {
		h.respondError(w, "PATCH /coupons/{code}/active", err)
		return
	}

	h.logger.Info("PATCH /coupons/{code}/active - Coupon updated: code=%s, active=%t", code, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, coupons.ErrCouponNotFound):
		h.logger.Warn("%s - Coupon not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, coupons.ErrCouponAlreadyExists):
		h.logger.Warn("%s - Coupon already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, coupons.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
