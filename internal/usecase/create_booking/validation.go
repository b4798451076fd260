package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

const (
	maxCustomerNameLength  = 100
	maxCustomerPhoneLength = 20
	maxNotesLength         = 500
	maxCouponCodeLength    = 50
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, maxCustomerNameLength)
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return err
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, maxNotesLength)
	}

	if req.CouponCode != nil {
		code := *req.CouponCode
		if code == "" || len(code) > maxCouponCodeLength {
			return fmt.Errorf("%w: couponCode must be 1-%d characters", ErrInvalidInput, maxCouponCodeLength)
		}
	}

	return nil
}

// validatePhone допускает цифры, пробелы, '+', '-' и скобки
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > maxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone must be at most %d characters", ErrInvalidInput, maxCustomerPhoneLength)
	}
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: customerPhone contains invalid character %q", ErrInvalidInput, r)
		}
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

// dayRange границы календарного дня начала бронирования [from, to)
func dayRange(start time.Time, loc *time.Location) (time.Time, time.Time) {
	local := start.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}
