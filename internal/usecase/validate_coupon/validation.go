package validate_coupon

import "fmt"

const maxCodeLength = 50

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Code == "" || len(req.Code) > maxCodeLength {
		return fmt.Errorf("%w: code must be 1-%d characters", ErrInvalidInput, maxCodeLength)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if (req.ServiceID == nil) == (req.TotalAmount == nil) {
		return fmt.Errorf("%w: exactly one of serviceId and totalAmount is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.TotalAmount != nil && req.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: totalAmount must not be negative", ErrInvalidInput)
	}

	return nil
}
