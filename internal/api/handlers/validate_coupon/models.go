package validate_coupon

import (
	"fmt"

	"github.com/shopspring/decimal"

	validateCoupon "github.com/m04kA/SMC-SalonService/internal/usecase/validate_coupon"
)

// ValidateCouponRequest HTTP request model.
// Сумма берется из услуги (serviceId) либо передается строкой (totalAmount)
type ValidateCouponRequest struct {
	Code        string  `json:"code"`
	ServiceID   *int64  `json:"serviceId,omitempty"`
	TotalAmount *string `json:"totalAmount,omitempty"`
}

// ValidateCouponResponse HTTP response model
type ValidateCouponResponse struct {
	CouponID       int64  `json:"couponId"`
	Code           string `json:"code"`
	TotalAmount    string `json:"totalAmount"`
	DiscountAmount string `json:"discountAmount"`
	FinalAmount    string `json:"finalAmount"`
}

// CouponDetails детали ответа при отказе купона
type CouponDetails struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *ValidateCouponRequest) ToUseCaseRequest(customerID int64) (*validateCoupon.Request, error) {
	req := &validateCoupon.Request{
		Code:       r.Code,
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
	}

	if r.TotalAmount != nil {
		amount, err := decimal.NewFromString(*r.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid totalAmount: %w", err)
		}
		req.TotalAmount = &amount
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateCoupon.Response) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		CouponID:       resp.CouponID,
		Code:           resp.Code,
		TotalAmount:    resp.TotalAmount.StringFixed(2),
		DiscountAmount: resp.DiscountAmount.StringFixed(2),
		FinalAmount:    resp.FinalAmount.StringFixed(2),
	}
}
