package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

// UseCase use case для переноса бронирования и смены мастера
type UseCase struct {
	bookingRepo      BookingRepository
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

// Execute переносит бронирование. Длительность сохраняется,
// проверка конфликтов исключает само переносимое бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result  *domain.Booking
		changed bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result, changed = nil, false

		// 1. Бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !req.IsAdmin && booking.CustomerID != req.UserID {
			uc.logger.Warn("UpdateBooking: user=%d has no access to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("UpdateBooking: booking id=%d has status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotReschedule, booking.Status)
		}

		// 2. Новый интервал, длительность сохраняется
		staffID := booking.StaffID
		if req.NewStaffID != nil {
			staffID = *req.NewStaffID
		}
		start := booking.StartTime
		if req.NewStartTime != nil {
			start = *req.NewStartTime
		}
		end := start.Add(booking.EndTime.Sub(booking.StartTime))

		if staffID == booking.StaffID && start.Equal(booking.StartTime) {
			result = booking
			return nil
		}

		// 3. Расписание нового мастера на новый день
		config, err := uc.scheduleResolver.Resolve(txCtx, staffID, start.In(uc.location).Weekday())
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to resolve schedule for staff=%d: %v", staffID, err)
			return fmt.Errorf("%w: failed to resolve schedule: %w", ErrInternal, err)
		}
		if err := validateSchedule(start, end, now, config, uc.location); err != nil {
			uc.logger.Warn("UpdateBooking: schedule validation failed: %v", err)
			return err
		}

		// 4. Проверка конфликтов без учета самого бронирования
		local := start.In(uc.location)
		from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.location)
		to := from.AddDate(0, 0, 1)
		bookings, err := uc.bookingRepo.GetByStaffWithFilter(txCtx, domain.StaffBookingsFilter{
			StaffID: staffID,
			From:    &from,
			To:      &to,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings of staff=%d: %v", staffID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		decision, err := scheduling.CheckConflict(staffID, start, end, &booking.ID, bookings)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !decision.Accepted {
			uc.logger.Warn("UpdateBooking: staff=%d is busy, conflicting bookings %v", staffID, decision.ConflictingIDs)
			return fmt.Errorf("%w: %w", ErrSlotConflict, decision.Err())
		}

		// 5. Сохраняем
		updated, err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, staffID, start, end)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				uc.logger.Warn("UpdateBooking: overlap rejected by constraint for staff=%d", staffID)
				return fmt.Errorf("%w: %w", ErrSlotConflict, err)
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result, changed = updated, true
		return nil
	})

	if err != nil {
		uc.recordConflict(err)
		if isUseCaseError(err) {
			return nil, err
		}
		uc.logger.Error("UpdateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	if changed {
		uc.logger.Info("UpdateBooking: booking id=%d moved to staff=%d at %s",
			result.ID, result.StaffID, result.StartTime.Format(time.RFC3339))
		_ = uc.notifier.NotifyWithGracefulDegradation(ctx, notificationservice.EventBookingRescheduled, result)
	}

	return toResponse(result, changed), nil
}

// recordConflict учитывает конфликт один раз по итоговой ошибке транзакции, повторы не считаются
func (uc *UseCase) recordConflict(err error) {
	var conflict *scheduling.ConflictError
	switch {
	case errors.As(err, &conflict):
		uc.metrics.IncBookingConflict(metrics.ConflictSourceGuard)
	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.metrics.IncBookingConflict(metrics.ConflictSourceConstraint)
	}
}

func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrAccessDenied, ErrCannotReschedule, ErrSalonClosed,
		ErrOutsideBusinessHours, ErrInPast, ErrTooLateToBook, ErrDateTooFarInFuture,
		ErrSlotConflict, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
