package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	couponRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-SalonService/internal/service/coupons/models"
)

var hundred = decimal.NewFromInt(100)

// Service администрирование купонов
// Любая запись сбрасывает кэш купона
type Service struct {
	couponRepo CouponRepository
	cache      CouponCache
	logger     Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(couponRepo CouponRepository, cache CouponCache, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		cache:      cache,
		logger:     logger,
	}
}

// Create создает купон
func (s *Service) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: creating coupon code=%s type=%s value=%s", req.Code, req.DiscountType, req.DiscountValue)

	coupon, err := toDomainCoupon(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for code=%s: %v", req.Code, err)
		return nil, err
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		if errors.Is(err, couponRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: coupon code=%s already exists", req.Code)
			return nil, ErrCouponAlreadyExists
		}
		s.logger.Error("Create: repository error for code=%s: %v", req.Code, err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.invalidate(ctx, created.Code)

	s.logger.Info("Create: successfully created coupon id=%d code=%s", created.ID, created.Code)
	return models.FromDomainCoupon(created), nil
}

// GetByCode возвращает купон вместе с числом использований
func (s *Service) GetByCode(ctx context.Context, code string) (*models.CouponResponse, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("GetByCode: coupon code=%s not found", code)
			return nil, ErrCouponNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %w", ErrInternal, err)
	}

	used, err := s.couponRepo.CountRedemptions(ctx, coupon.ID)
	if err != nil {
		s.logger.Error("GetByCode: failed to count redemptions for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - count redemptions: %w", ErrInternal, err)
	}

	resp := models.FromDomainCoupon(coupon)
	resp.TimesUsed = &used
	return resp, nil
}

// SetActive включает или выключает купон
func (s *Service) SetActive(ctx context.Context, code string, active bool) (*models.CouponResponse, error) {
	s.logger.Info("SetActive: setting coupon code=%s active=%t", code, active)

	coupon, err := s.couponRepo.SetActive(ctx, code, active)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("SetActive: coupon code=%s not found", code)
			return nil, ErrCouponNotFound
		}
		s.logger.Error("SetActive: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %w", ErrInternal, err)
	}

	s.invalidate(ctx, code)
	return models.FromDomainCoupon(coupon), nil
}

// invalidate сбрасывает кэш; ошибка кэша не отменяет запись в БД, запись истечет по TTL
func (s *Service) invalidate(ctx context.Context, code string) {
	if err := s.cache.Invalidate(ctx, code); err != nil {
		s.logger.Warn("coupon cache invalidation failed for code=%s: %v", code, err)
	}
}

// toDomainCoupon валидирует запрос и собирает купон
func toDomainCoupon(req *models.CreateCouponRequest) (*domain.Coupon, error) {
	code := req.Code
	if code == "" || strings.TrimSpace(code) != code || strings.ContainsAny(code, " \t\n") {
		return nil, fmt.Errorf("%w: code must be non-empty and contain no whitespace", ErrInvalidInput)
	}
	if utf8.RuneCountInString(code) > domain.MaxCouponCodeLength {
		return nil, fmt.Errorf("%w: code is longer than %d characters", ErrInvalidInput, domain.MaxCouponCodeLength)
	}

	discountType := domain.DiscountType(req.DiscountType)
	if !discountType.IsValid() {
		return nil, fmt.Errorf("%w: discountType must be percentage or fixed", ErrInvalidInput)
	}

	value, err := decimal.NewFromString(req.DiscountValue)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid discountValue: %v", ErrInvalidInput, err)
	}
	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: discountValue must be positive", ErrInvalidInput)
	}
	if discountType == domain.DiscountPercentage && value.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: percentage discount must not exceed 100", ErrInvalidInput)
	}

	minPurchase, err := optionalAmount("minimumPurchaseAmount", req.MinimumPurchaseAmount)
	if err != nil {
		return nil, err
	}
	maxDiscount, err := optionalAmount("maximumDiscountAmount", req.MaximumDiscountAmount)
	if err != nil {
		return nil, err
	}

	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		return nil, fmt.Errorf("%w: usageLimit must be positive", ErrInvalidInput)
	}
	if req.PerUserLimit != nil && *req.PerUserLimit <= 0 {
		return nil, fmt.Errorf("%w: perUserLimit must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &domain.Coupon{
		Code:                  code,
		Description:           req.Description,
		DiscountType:          discountType,
		DiscountValue:         value,
		MinimumPurchaseAmount: minPurchase,
		MaximumDiscountAmount: maxDiscount,
		UsageLimit:            req.UsageLimit,
		PerUserLimit:          req.PerUserLimit,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		IsActive:              isActive,
	}, nil
}

func optionalAmount(field string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", ErrInvalidInput, field, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	return &d, nil
}
