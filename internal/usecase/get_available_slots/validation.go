package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ExcludeBookingID != nil && *req.ExcludeBookingID <= 0 {
		return fmt.Errorf("%w: excludeBookingID must be positive", ErrInvalidInput)
	}

	return nil
}

func mapDateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scheduling.ErrInPast):
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	case errors.Is(err, scheduling.ErrTooFarInFuture):
		return fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
