package validate_coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/discount"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	couponRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/coupon"
)

// UseCase предварительная проверка купона без его использования
type UseCase struct {
	couponRepo   CouponRepository
	cache        CouponCache
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	couponRepo CouponRepository,
	cache CouponCache,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		couponRepo:   couponRepo,
		cache:        cache,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute рассчитывает скидку по купону на согласованном снимке данных.
// Результат не гарантирует, что купон будет принят при создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateCoupon: code=%q, customer=%d", req.Code, req.CustomerID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateCoupon: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result discount.Result

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		total, err := uc.totalAmount(txCtx, req)
		if err != nil {
			return err
		}

		coupon, err := uc.getCoupon(txCtx, req.Code)
		if err != nil {
			return err
		}

		input := discount.Input{
			Coupon:      coupon,
			Code:        req.Code,
			Now:         now,
			CustomerID:  req.CustomerID,
			TotalAmount: total,
		}

		if coupon != nil {
			input.PriorTotalRedemptions, err = uc.couponRepo.CountRedemptions(txCtx, coupon.ID)
			if err != nil {
				uc.logger.Error("ValidateCoupon: failed to count redemptions of coupon id=%d: %v", coupon.ID, err)
				return fmt.Errorf("%w: failed to count redemptions: %w", ErrInternal, err)
			}
			input.PriorUserRedemptions, err = uc.couponRepo.CountUserRedemptions(txCtx, coupon.ID, req.CustomerID)
			if err != nil {
				uc.logger.Error("ValidateCoupon: failed to count user redemptions of coupon id=%d: %v", coupon.ID, err)
				return fmt.Errorf("%w: failed to count user redemptions: %w", ErrInternal, err)
			}
		}

		result, err = discount.Apply(input)
		if err != nil {
			if reason, ok := discount.ReasonOf(err); ok {
				uc.logger.Warn("ValidateCoupon: coupon %q rejected: %s", req.Code, reason)
				return fmt.Errorf("%w: %w", ErrCouponInvalid, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil
	})

	if err != nil {
		if reason, ok := discount.ReasonOf(err); ok {
			uc.metrics.IncCouponRejection(string(reason))
		}
		if errors.Is(err, ErrCouponInvalid) || errors.Is(err, ErrServiceNotFound) ||
			errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("ValidateCoupon: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.logger.Info("ValidateCoupon: coupon %q gives discount %s", result.Code, result.DiscountAmount.StringFixed(2))

	return toResponse(result), nil
}

func (uc *UseCase) totalAmount(ctx context.Context, req *Request) (decimal.Decimal, error) {
	if req.TotalAmount != nil {
		return *req.TotalAmount, nil
	}

	service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return decimal.Zero, ErrServiceNotFound
		}
		uc.logger.Error("ValidateCoupon: failed to get service id=%d: %v", *req.ServiceID, err)
		return decimal.Zero, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		return decimal.Zero, ErrServiceNotFound
	}
	return service.Price, nil
}

// getCoupon читает купон через кэш; неизвестный код возвращает nil без ошибки
func (uc *UseCase) getCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	cached, err := uc.cache.Get(ctx, code)
	if err != nil {
		uc.logger.Warn("ValidateCoupon: cache get failed for %q: %v", code, err)
	}
	if cached != nil {
		return cached, nil
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if errors.Is(err, couponRepo.ErrCouponNotFound) {
		return nil, nil
	}
	if err != nil {
		uc.logger.Error("ValidateCoupon: failed to get coupon %q: %v", code, err)
		return nil, fmt.Errorf("%w: failed to get coupon: %w", ErrInternal, err)
	}

	if err := uc.cache.Set(ctx, coupon); err != nil {
		uc.logger.Warn("ValidateCoupon: cache set failed for %q: %v", code, err)
	}

	return coupon, nil
}
