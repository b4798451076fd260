package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// CreateCouponRequest запрос на создание купона
// Суммы передаются строками, чтобы не терять точность
type CreateCouponRequest struct {
	Code                  string     `json:"code"`
	Description           *string    `json:"description,omitempty"`
	DiscountType          string     `json:"discountType"` // percentage | fixed
	DiscountValue         string     `json:"discountValue"`
	MinimumPurchaseAmount *string    `json:"minimumPurchaseAmount,omitempty"`
	MaximumDiscountAmount *string    `json:"maximumDiscountAmount,omitempty"`
	UsageLimit            *int       `json:"usageLimit,omitempty"`
	PerUserLimit          *int       `json:"perUserLimit,omitempty"`
	StartDate             *time.Time `json:"startDate,omitempty"`
	EndDate               *time.Time `json:"endDate,omitempty"`
	IsActive              *bool      `json:"isActive,omitempty"` // по умолчанию true
}

// CouponResponse ответ с данными купона
type CouponResponse struct {
	ID                    int64      `json:"id"`
	Code                  string     `json:"code"`
	Description           *string    `json:"description,omitempty"`
	DiscountType          string     `json:"discountType"`
	DiscountValue         string     `json:"discountValue"`
	MinimumPurchaseAmount *string    `json:"minimumPurchaseAmount,omitempty"`
	MaximumDiscountAmount *string    `json:"maximumDiscountAmount,omitempty"`
	UsageLimit            *int       `json:"usageLimit,omitempty"`
	PerUserLimit          *int       `json:"perUserLimit,omitempty"`
	StartDate             *time.Time `json:"startDate,omitempty"`
	EndDate               *time.Time `json:"endDate,omitempty"`
	IsActive              bool       `json:"isActive"`
	TimesUsed             *int       `json:"timesUsed,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}

	return &CouponResponse{
		ID:                    c.ID,
		Code:                  c.Code,
		Description:           c.Description,
		DiscountType:          string(c.DiscountType),
		DiscountValue:         c.DiscountValue.String(),
		MinimumPurchaseAmount: money(c.MinimumPurchaseAmount),
		MaximumDiscountAmount: money(c.MaximumDiscountAmount),
		UsageLimit:            c.UsageLimit,
		PerUserLimit:          c.PerUserLimit,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

func money(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
