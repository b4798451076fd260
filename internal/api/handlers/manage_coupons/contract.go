package manage_coupons

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/coupons/models"
)

type CouponService interface {
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error)
	GetByCode(ctx context.Context, code string) (*models.CouponResponse, error)
	SetActive(ctx context.Context, code string, active bool) (*models.CouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
