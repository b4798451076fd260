package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/discount"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	couponRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	couponRepo       CouponRepository
	scheduleResolver ScheduleResolver
	notifier         NotificationClient
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	couponRepo CouponRepository,
	scheduleResolver ScheduleResolver,
	notifier NotificationClient,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		couponRepo:       couponRepo,
		scheduleResolver: scheduleResolver,
		notifier:         notifier,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка купона, проверка конфликтов и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, staff=%d, service=%d, start=%s",
		req.CustomerID, req.StaffID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Интервал бронирования
	start := req.StartTime
	end := start.Add(service.Duration())
	if err := (scheduling.Interval{Start: start, End: end}).Validate(); err != nil {
		uc.logger.Warn("CreateBooking: invalid interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 4. Расписание мастера на день бронирования
	config, err := uc.scheduleResolver.Resolve(ctx, req.StaffID, start.In(uc.location).Weekday())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to resolve schedule: %w", ErrInternal, err)
	}
	if err := validateSchedule(start, end, now, config, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: schedule validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Купон, проверка конфликтов и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = nil

		// 5.1. Применяем купон
		priced, err := uc.applyCoupon(txCtx, req, service.Price, now)
		if err != nil {
			return err
		}

		// 5.2. Бронирования мастера на день с блокировкой (FOR UPDATE)
		from, to := dayRange(start, uc.location)
		bookings, err := uc.bookingRepo.GetByStaffWithFilter(txCtx, domain.StaffBookingsFilter{
			StaffID: req.StaffID,
			From:    &from,
			To:      &to,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings of staff=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		decision, err := scheduling.CheckConflict(req.StaffID, start, end, nil, bookings)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
		}
		if !decision.Accepted {
			uc.logger.Warn("CreateBooking: staff=%d is busy, conflicting bookings %v",
				req.StaffID, decision.ConflictingIDs)
			return fmt.Errorf("%w: %w", ErrSlotConflict, decision.Err())
		}

		// 5.3. Код бронирования и запись
		reference, err := uc.bookingRepo.GenerateReference(txCtx, req.CustomerName, req.CustomerPhone)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate reference: %v", err)
			return fmt.Errorf("%w: failed to generate reference: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			Reference:      reference,
			CustomerID:     req.CustomerID,
			CustomerName:   strings.TrimSpace(req.CustomerName),
			CustomerPhone:  req.CustomerPhone,
			StaffID:        req.StaffID,
			ServiceID:      service.ID,
			StartTime:      start,
			EndTime:        end,
			Status:         domain.StatusScheduled,
			ServiceName:    service.Name,
			ServicePrice:   priced.TotalAmount,
			DiscountAmount: priced.DiscountAmount,
			FinalAmount:    priced.FinalAmount,
			Notes:          req.Notes,
		}
		if priced.CouponID != 0 {
			booking.CouponCode = &priced.Code
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: overlap rejected by constraint for staff=%d", req.StaffID)
				return fmt.Errorf("%w: %w", ErrSlotConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 5.4. Фиксируем использование купона
		if priced.CouponID != 0 {
			_, err := uc.couponRepo.RecordRedemption(txCtx, &domain.Redemption{
				CouponID:    priced.CouponID,
				CustomerID:  req.CustomerID,
				BookingID:   &created.ID,
				AmountSaved: priced.DiscountAmount,
			})
			if err != nil {
				uc.logger.Error("CreateBooking: failed to record redemption of coupon id=%d: %v", priced.CouponID, err)
				return fmt.Errorf("%w: failed to record redemption: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		uc.recordRejection(err)
		if errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrCouponInvalid) ||
			errors.Is(err, ErrInvalidInterval) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	// 6. Уведомление после коммита
	_ = uc.notifier.NotifyWithGracefulDegradation(ctx, notificationservice.EventBookingCreated, result)

	return toResponse(result), nil
}

// recordRejection учитывает отказ один раз по итоговой ошибке транзакции, повторы не считаются
func (uc *UseCase) recordRejection(err error) {
	var conflict *scheduling.ConflictError
	switch {
	case errors.As(err, &conflict):
		uc.metrics.IncBookingConflict(metrics.ConflictSourceGuard)
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.metrics.IncBookingConflict(metrics.ConflictSourceConstraint)
	}

	if reason, ok := discount.ReasonOf(err); ok {
		uc.metrics.IncCouponRejection(string(reason))
	}
}

// applyCoupon рассчитывает стоимость с учетом купона.
// Строка купона блокируется, счетчики читаются в той же транзакции, где будет записано использование
func (uc *UseCase) applyCoupon(ctx context.Context, req *Request, price decimal.Decimal, now time.Time) (discount.Result, error) {
	if req.CouponCode == nil {
		total := price.Round(2)
		return discount.Result{TotalAmount: total, DiscountAmount: decimal.Zero, FinalAmount: total}, nil
	}

	code := *req.CouponCode
	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, couponRepo.ErrCouponNotFound) {
		uc.logger.Error("CreateBooking: failed to get coupon %q: %v", code, err)
		return discount.Result{}, fmt.Errorf("%w: failed to get coupon: %w", ErrInternal, err)
	}

	input := discount.Input{
		Coupon:      coupon,
		Code:        code,
		Now:         now,
		CustomerID:  req.CustomerID,
		TotalAmount: price,
	}

	if coupon != nil {
		input.PriorTotalRedemptions, err = uc.couponRepo.CountRedemptions(ctx, coupon.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count redemptions of coupon id=%d: %v", coupon.ID, err)
			return discount.Result{}, fmt.Errorf("%w: failed to count redemptions: %w", ErrInternal, err)
		}
		input.PriorUserRedemptions, err = uc.couponRepo.CountUserRedemptions(ctx, coupon.ID, req.CustomerID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count user redemptions of coupon id=%d: %v", coupon.ID, err)
			return discount.Result{}, fmt.Errorf("%w: failed to count user redemptions: %w", ErrInternal, err)
		}
	}

	result, err := discount.Apply(input)
	if err != nil {
		if reason, ok := discount.ReasonOf(err); ok {
			uc.logger.Warn("CreateBooking: coupon %q rejected: %s", code, reason)
			return discount.Result{}, fmt.Errorf("%w: %w", ErrCouponInvalid, err)
		}
		uc.logger.Error("CreateBooking: failed to apply coupon %q: %v", code, err)
		return discount.Result{}, fmt.Errorf("%w: failed to apply coupon: %w", ErrInternal, err)
	}

	return result, nil
}
