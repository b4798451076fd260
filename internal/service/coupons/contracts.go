package coupons

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	SetActive(ctx context.Context, code string, active bool) (*domain.Coupon, error)
	CountRedemptions(ctx context.Context, couponID int64) (int, error)
}

// CouponCache интерфейс кэша купонов
type CouponCache interface {
	Invalidate(ctx context.Context, code string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
