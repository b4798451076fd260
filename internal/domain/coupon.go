package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType how a coupon reduces the total
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid returns true for a known discount type
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Coupon a discount code. Codes are case-sensitive.
// Nil limits and dates mean "unbounded".
type Coupon struct {
	ID                    int64
	Code                  string
	Description           *string
	DiscountType          DiscountType
	DiscountValue         decimal.Decimal
	MinimumPurchaseAmount *decimal.Decimal
	MaximumDiscountAmount *decimal.Decimal // caps percentage discounts only
	UsageLimit            *int
	PerUserLimit          *int
	StartDate             *time.Time
	EndDate               *time.Time
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsCurrentlyValid returns true if the coupon is active and now is inside its date window.
// Both window bounds are inclusive.
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate != nil && c.StartDate.After(now) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(now) {
		return false
	}
	return true
}

// Redemption one use of a coupon by a customer
type Redemption struct {
	ID          int64
	CouponID    int64
	CustomerID  int64
	BookingID   *int64
	AmountSaved decimal.Decimal
	CreatedAt   time.Time
}
