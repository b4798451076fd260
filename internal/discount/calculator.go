package discount

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// moneyScale number of fraction digits kept for money
const moneyScale = 2

var hundred = decimal.NewFromInt(100)

// Input everything Apply needs; counts are read by the caller in the same transaction
// that records the redemption.
type Input struct {
	Coupon                *domain.Coupon // nil when the code is unknown
	Code                  string
	Now                   time.Time
	CustomerID            int64
	PriorTotalRedemptions int
	PriorUserRedemptions  int
	TotalAmount           decimal.Decimal
}

// Result of a successful application
type Result struct {
	CouponID       int64
	Code           string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Apply validates the coupon against the order and computes the discount.
// Gates run in a fixed order and the first failure is returned as *InvalidError.
// A fixed discount larger than the total is clamped so the final amount never goes below zero.
func Apply(in Input) (Result, error) {
	if in.TotalAmount.IsNegative() {
		return Result{}, fmt.Errorf("%w: total %s is negative", ErrInvalidAmount, in.TotalAmount)
	}

	c := in.Coupon
	code := in.Code
	if c != nil {
		code = c.Code
	}
	reject := func(reason Reason) (Result, error) {
		return Result{}, &InvalidError{Code: code, Reason: reason}
	}

	if c == nil {
		return reject(ReasonNotFound)
	}
	if !c.IsCurrentlyValid(in.Now) {
		return reject(ReasonInactiveOrExpired)
	}
	if c.UsageLimit != nil && in.PriorTotalRedemptions >= *c.UsageLimit {
		return reject(ReasonUsageLimitReached)
	}
	if c.PerUserLimit != nil && in.PriorUserRedemptions >= *c.PerUserLimit {
		return reject(ReasonPerUserLimitReached)
	}
	if c.MinimumPurchaseAmount != nil && in.TotalAmount.LessThan(*c.MinimumPurchaseAmount) {
		return reject(ReasonBelowMinimumPurchase)
	}

	total := in.TotalAmount.Round(moneyScale)
	amount := Amount(c, total)

	return Result{
		CouponID:       c.ID,
		Code:           c.Code,
		TotalAmount:    total,
		DiscountAmount: amount,
		FinalAmount:    total.Sub(amount),
	}, nil
}

// Amount computes the discount of the coupon for total without checking any gate
func Amount(c *domain.Coupon, total decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal

	switch c.DiscountType {
	case domain.DiscountPercentage:
		amount = total.Mul(c.DiscountValue).Div(hundred).Round(moneyScale)
		if c.MaximumDiscountAmount != nil && amount.GreaterThan(*c.MaximumDiscountAmount) {
			amount = c.MaximumDiscountAmount.Round(moneyScale)
		}
	case domain.DiscountFixed:
		amount = c.DiscountValue.Round(moneyScale)
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(total) {
		return total
	}
	return amount
}
