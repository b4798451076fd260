package validate_coupon

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/discount"
)

// Request модель запроса на предварительную проверку купона.
// Сумма берется из услуги (ServiceID) либо передается явно (TotalAmount)
type Request struct {
	Code        string
	CustomerID  int64
	ServiceID   *int64
	TotalAmount *decimal.Decimal
}

// Response результат применения купона
type Response struct {
	CouponID       int64
	Code           string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

func toResponse(r discount.Result) *Response {
	return &Response{
		CouponID:       r.CouponID,
		Code:           r.Code,
		TotalAmount:    r.TotalAmount,
		DiscountAmount: r.DiscountAmount,
		FinalAmount:    r.FinalAmount,
	}
}
