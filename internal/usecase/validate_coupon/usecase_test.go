package validate_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/discount"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	couponCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/coupon"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	couponRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockCouponRepo struct {
	mock.Mock
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *mockCouponRepo) CountRedemptions(ctx context.Context, couponID int64) (int, error) {
	args := m.Called(ctx, couponID)
	return args.Int(0), args.Error(1)
}

func (m *mockCouponRepo) CountUserRedemptions(ctx context.Context, couponID, customerID int64) (int, error) {
	args := m.Called(ctx, couponID, customerID)
	return args.Int(0), args.Error(1)
}

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newCache(t *testing.T) *couponCache.Cache {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return couponCache.NewCache(client, time.Minute)
}

func summer() *domain.Coupon {
	return &domain.Coupon{
		ID:                    7,
		Code:                  "SUMMER50",
		DiscountType:          domain.DiscountPercentage,
		DiscountValue:         decimal.NewFromInt(50),
		MaximumDiscountAmount: ptr.Ptr(decimal.NewFromInt(1000)),
		PerUserLimit:          ptr.Ptr(1),
		IsActive:              true,
	}
}

func newUseCase(repo *mockCouponRepo, services *mockServiceRepo, cache CouponCache) *UseCase {
	return NewUseCase(repo, cache, services, inlineTx{}, nil, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)})
}

func TestExecute_CachesCoupon(t *testing.T) {
	ctx := context.Background()
	repo := &mockCouponRepo{}
	repo.On("GetByCode", ctx, "SUMMER50").Return(summer(), nil).Once()
	repo.On("CountRedemptions", ctx, int64(7)).Return(10, nil)
	repo.On("CountUserRedemptions", ctx, int64(7), int64(10)).Return(0, nil)

	uc := newUseCase(repo, &mockServiceRepo{}, newCache(t))
	req := &Request{Code: "SUMMER50", CustomerID: 10, TotalAmount: ptr.Ptr(decimal.NewFromInt(5000))}

	for i := 0; i < 2; i++ {
		resp, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "1000.00", resp.DiscountAmount.StringFixed(2))
		assert.Equal(t, "4000.00", resp.FinalAmount.StringFixed(2))
		assert.Equal(t, int64(7), resp.CouponID)
	}

	// второй вызов обслужен из кэша
	repo.AssertNumberOfCalls(t, "GetByCode", 1)
}

func TestExecute_PriceFromService(t *testing.T) {
	ctx := context.Background()
	repo := &mockCouponRepo{}
	repo.On("GetByCode", ctx, "SUMMER50").Return(summer(), nil)
	repo.On("CountRedemptions", ctx, int64(7)).Return(0, nil)
	repo.On("CountUserRedemptions", ctx, int64(7), int64(10)).Return(0, nil)

	services := &mockServiceRepo{}
	services.On("GetByID", ctx, int64(5)).Return(&domain.Service{ID: 5, Price: decimal.NewFromInt(1200), IsActive: true}, nil)
	services.On("GetByID", ctx, int64(6)).Return(nil, catalogRepo.ErrServiceNotFound)

	uc := newUseCase(repo, services, newCache(t))

	resp, err := uc.Execute(ctx, &Request{Code: "SUMMER50", CustomerID: 10, ServiceID: ptr.Ptr(int64(5))})
	require.NoError(t, err)
	assert.Equal(t, "600.00", resp.DiscountAmount.StringFixed(2))

	_, err = uc.Execute(ctx, &Request{Code: "SUMMER50", CustomerID: 10, ServiceID: ptr.Ptr(int64(6))})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Rejected(t *testing.T) {
	ctx := context.Background()
	repo := &mockCouponRepo{}
	repo.On("GetByCode", ctx, "SUMMER50").Return(summer(), nil)
	repo.On("GetByCode", ctx, "summer50").Return(nil, couponRepo.ErrCouponNotFound)
	repo.On("CountRedemptions", ctx, int64(7)).Return(0, nil)
	repo.On("CountUserRedemptions", ctx, int64(7), int64(10)).Return(1, nil)

	uc := newUseCase(repo, &mockServiceRepo{}, newCache(t))
	amount := ptr.Ptr(decimal.NewFromInt(5000))

	_, err := uc.Execute(ctx, &Request{Code: "SUMMER50", CustomerID: 10, TotalAmount: amount})
	require.ErrorIs(t, err, ErrCouponInvalid)
	reason, ok := discount.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, discount.ReasonPerUserLimitReached, reason)

	_, err = uc.Execute(ctx, &Request{Code: "summer50", CustomerID: 10, TotalAmount: amount})
	require.ErrorIs(t, err, ErrCouponInvalid)
	reason, _ = discount.ReasonOf(err)
	assert.Equal(t, discount.ReasonNotFound, reason)
}

func TestValidateRequest(t *testing.T) {
	amount := ptr.Ptr(decimal.NewFromInt(100))

	assert.NoError(t, validateRequest(&Request{Code: "X", CustomerID: 1, TotalAmount: amount}))
	assert.ErrorIs(t, validateRequest(&Request{Code: "", CustomerID: 1, TotalAmount: amount}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{Code: "X", CustomerID: 0, TotalAmount: amount}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{Code: "X", CustomerID: 1}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{Code: "X", CustomerID: 1, TotalAmount: amount, ServiceID: ptr.Ptr(int64(1))}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{Code: "X", CustomerID: 1, TotalAmount: ptr.Ptr(decimal.NewFromInt(-1))}), ErrInvalidInput)
}
