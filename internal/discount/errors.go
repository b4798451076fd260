package discount

import (
	"errors"
	"fmt"
)

var (
	// ErrCouponInvalid возвращается, если купон нельзя применить (причина в InvalidError)
	ErrCouponInvalid = errors.New("discount: coupon invalid")

	// ErrInvalidAmount возвращается при отрицательной сумме заказа
	ErrInvalidAmount = errors.New("discount: invalid amount")
)

// Reason причина отказа в применении купона, передается пользователю как есть
type Reason string

const (
	ReasonNotFound             Reason = "not_found"
	ReasonInactiveOrExpired    Reason = "inactive_or_expired"
	ReasonUsageLimitReached    Reason = "usage_limit_reached"
	ReasonPerUserLimitReached  Reason = "per_user_limit_reached"
	ReasonBelowMinimumPurchase Reason = "below_minimum_purchase"
)

// InvalidError отказ в применении купона
type InvalidError struct {
	Code   string
	Reason Reason
}

func (e *InvalidError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", ErrCouponInvalid.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrCouponInvalid.Error(), e.Reason, e.Code)
}

func (e *InvalidError) Unwrap() error {
	return ErrCouponInvalid
}

// ReasonOf извлекает причину отказа из цепочки ошибок
func ReasonOf(err error) (Reason, bool) {
	var invalid *InvalidError
	if errors.As(err, &invalid) {
		return invalid.Reason, true
	}
	return "", false
}
