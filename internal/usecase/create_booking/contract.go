package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
	GenerateReference(ctx context.Context, customerName, customerPhone string) (string, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	CountRedemptions(ctx context.Context, couponID int64) (int, error)
	CountUserRedemptions(ctx context.Context, couponID, customerID int64) (int, error)
	RecordRedemption(ctx context.Context, redemption *domain.Redemption) (*domain.Redemption, error)
}

// ScheduleResolver возвращает действующую конфигурацию расписания мастера на день недели
type ScheduleResolver interface {
	Resolve(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.ScheduleConfig, error)
}

// NotificationClient интерфейс клиента NotificationService
type NotificationClient interface {
	NotifyWithGracefulDegradation(ctx context.Context, eventType notificationservice.EventType, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики создания бронирований
type Metrics interface {
	IncBookingConflict(source string)
	IncBookingCreated()
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

func (nopMetrics) IncBookingConflict(string) {}
func (nopMetrics) IncBookingCreated()        {}
func (nopMetrics) IncCouponRejection(string) {}
