package validate_coupon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/discount"
	validateCoupon "github.com/m04kA/SMC-SalonService/internal/usecase/validate_coupon"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCouponInvalid      = "купон не может быть применен"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidData        = "некорректные данные запроса"
)

type Handler struct {
	useCase ValidateCouponUseCase
	logger  Logger
}

func NewHandler(useCase ValidateCouponUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/coupons/validate
// Предварительный расчет скидки, использование купона не фиксируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /coupons/validate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid amount: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateCoupon.ErrCouponInvalid):
			reason, _ := discount.ReasonOf(err)
			h.logger.Warn("POST /coupons/validate - Coupon rejected: customer_id=%d, reason=%s", customerID, reason)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgCouponInvalid, CouponDetails{Reason: string(reason)})

		case errors.Is(err, validateCoupon.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, validateCoupon.ErrInvalidInput):
			h.logger.Warn("POST /coupons/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons/validate - Coupon applicable: customer_id=%d, coupon_id=%d, discount=%s",
		customerID, result.CouponID, result.DiscountAmount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
