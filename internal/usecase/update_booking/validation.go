package update_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.NewStartTime == nil && req.NewStaffID == nil {
		return fmt.Errorf("%w: startTime or staffId is required", ErrInvalidInput)
	}

	if req.NewStartTime != nil && req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: startTime must not be empty", ErrInvalidInput)
	}

	if req.NewStaffID != nil && *req.NewStaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	return nil
}

// validateSchedule проверяет интервал по рабочим часам и окну бронирования
func validateSchedule(start, end, now time.Time, cfg *domain.ScheduleConfig, loc *time.Location) error {
	err := scheduling.WindowOf(cfg).CheckInterval(cfg.BusinessHours(), start, end, now, loc)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scheduling.ErrClosed):
		return ErrSalonClosed
	case errors.Is(err, scheduling.ErrOutsideBusinessHours):
		return fmt.Errorf("%w: %w", ErrOutsideBusinessHours, err)
	case errors.Is(err, scheduling.ErrInPast):
		return ErrInPast
	case errors.Is(err, scheduling.ErrTooLateToBook):
		return fmt.Errorf("%w: %w", ErrTooLateToBook, err)
	case errors.Is(err, scheduling.ErrTooFarInFuture):
		return fmt.Errorf("%w: %w", ErrDateTooFarInFuture, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
