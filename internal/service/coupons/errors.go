package coupons

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupons: coupon not found")

	// ErrCouponAlreadyExists возвращается при совпадении кода купона
	ErrCouponAlreadyExists = errors.New("coupons: coupon already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("coupons: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("coupons: internal error")
)
