package validate_coupon

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountRedemptions(ctx context.Context, couponID int64) (int, error)
	CountUserRedemptions(ctx context.Context, couponID, customerID int64) (int, error)
}

// CouponCache кэш купонов, промах возвращает (nil, nil)
type CouponCache interface {
	Get(ctx context.Context, code string) (*domain.Coupon, error)
	Set(ctx context.Context, coupon *domain.Coupon) error
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики отказов купонов
type Metrics interface {
	IncCouponRejection(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) IncCouponRejection(string) {}
