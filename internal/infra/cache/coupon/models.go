package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// cachedCoupon JSON-представление купона в Redis
type cachedCoupon struct {
	ID                    int64            `json:"id"`
	Code                  string           `json:"code"`
	Description           *string          `json:"description,omitempty"`
	DiscountType          string           `json:"discount_type"`
	DiscountValue         decimal.Decimal  `json:"discount_value"`
	MinimumPurchaseAmount *decimal.Decimal `json:"minimum_purchase_amount,omitempty"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximum_discount_amount,omitempty"`
	UsageLimit            *int             `json:"usage_limit,omitempty"`
	PerUserLimit          *int             `json:"per_user_limit,omitempty"`
	StartDate             *time.Time       `json:"start_date,omitempty"`
	EndDate               *time.Time       `json:"end_date,omitempty"`
	IsActive              bool             `json:"is_active"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

func fromDomain(c *domain.Coupon) cachedCoupon {
	return cachedCoupon{
		ID:                    c.ID,
		Code:                  c.Code,
		Description:           c.Description,
		DiscountType:          string(c.DiscountType),
		DiscountValue:         c.DiscountValue,
		MinimumPurchaseAmount: c.MinimumPurchaseAmount,
		MaximumDiscountAmount: c.MaximumDiscountAmount,
		UsageLimit:            c.UsageLimit,
		PerUserLimit:          c.PerUserLimit,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

func (c cachedCoupon) toDomain() *domain.Coupon {
	return &domain.Coupon{
		ID:                    c.ID,
		Code:                  c.Code,
		Description:           c.Description,
		DiscountType:          domain.DiscountType(c.DiscountType),
		DiscountValue:         c.DiscountValue,
		MinimumPurchaseAmount: c.MinimumPurchaseAmount,
		MaximumDiscountAmount: c.MaximumDiscountAmount,
		UsageLimit:            c.UsageLimit,
		PerUserLimit:          c.PerUserLimit,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
