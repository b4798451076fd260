package validate_coupon

import "errors"

var (
	// ErrCouponInvalid возвращается, когда купон нельзя применить (причина в *discount.InvalidError)
	ErrCouponInvalid = errors.New("validate_coupon: coupon cannot be applied")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("validate_coupon: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_coupon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_coupon: internal error")
)
