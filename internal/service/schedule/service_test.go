package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) Create(ctx context.Context, c *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *mockConfigRepo) GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *mockConfigRepo) GetConfigWithHierarchy(ctx context.Context, staffID *int64, weekday time.Weekday) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, staffID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *mockConfigRepo) GetAll(ctx context.Context) ([]*domain.ScheduleConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduleConfig), args.Error(1)
}

func (m *mockConfigRepo) Update(ctx context.Context, id int64, c *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *mockConfigRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDefaults = Defaults{
	OpenTime:               "09:00",
	CloseTime:              "18:00",
	SlotGranularityMinutes: 30,
	AdvanceBookingDays:     30,
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("stored config wins", func(t *testing.T) {
		repo := &mockConfigRepo{}
		stored := &domain.ScheduleConfig{ID: 5, OpenTime: "10:00", CloseTime: "20:00", IsOpen: true, SlotGranularityMinutes: 15}
		repo.On("GetConfigWithHierarchy", ctx, ptr.Ptr(int64(7)), time.Saturday).Return(stored, nil)

		cfg, err := NewService(repo, testDefaults, nopLogger{}).Resolve(ctx, 7, time.Saturday)

		require.NoError(t, err)
		assert.Same(t, stored, cfg)
		repo.AssertExpectations(t)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("GetConfigWithHierarchy", ctx, mock.Anything, time.Monday).Return(nil, configRepo.ErrConfigNotFound)

		cfg, err := NewService(repo, testDefaults, nopLogger{}).Resolve(ctx, 7, time.Monday)

		require.NoError(t, err)
		assert.Equal(t, int64(0), cfg.ID)
		assert.True(t, cfg.IsOpen)
		assert.Equal(t, "09:00", cfg.OpenTime.String())
		assert.Equal(t, "18:00", cfg.CloseTime.String())
		assert.Equal(t, 30, cfg.SlotGranularityMinutes)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("GetConfigWithHierarchy", ctx, mock.Anything, time.Monday).Return(nil, errors.New("connection refused"))

		_, err := NewService(repo, testDefaults, nopLogger{}).Resolve(ctx, 7, time.Monday)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid weekday config", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("Create", ctx, mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
			return c.Weekday != nil && *c.Weekday == time.Sunday && !c.IsOpen
		})).Return(&domain.ScheduleConfig{
			ID: 3, Weekday: ptr.Ptr(time.Sunday), OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30,
		}, nil)

		resp, err := NewService(repo, testDefaults, nopLogger{}).Create(ctx, &models.CreateConfigRequest{
			Weekday:                ptr.Ptr(0),
			OpenTime:               "09:00",
			CloseTime:              "18:00",
			IsOpen:                 ptr.Ptr(false),
			SlotGranularityMinutes: 30,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "weekday", resp.Level)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("Create", ctx, mock.Anything).Return(nil, configRepo.ErrDuplicateConfig)

		_, err := NewService(repo, testDefaults, nopLogger{}).Create(ctx, &models.CreateConfigRequest{
			OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30,
		})

		assert.ErrorIs(t, err, ErrConfigAlreadyExists)
	})

	invalid := []struct {
		name string
		req  models.CreateConfigRequest
	}{
		{name: "weekday out of range", req: models.CreateConfigRequest{Weekday: ptr.Ptr(7), OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30}},
		{name: "bad open time", req: models.CreateConfigRequest{OpenTime: "9am", CloseTime: "18:00", SlotGranularityMinutes: 30}},
		{name: "close before open", req: models.CreateConfigRequest{OpenTime: "18:00", CloseTime: "09:00", SlotGranularityMinutes: 30}},
		{name: "granularity too small", req: models.CreateConfigRequest{OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 1}},
		{name: "negative advance days", req: models.CreateConfigRequest{OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30, AdvanceBookingDays: -1}},
		{name: "notice too long", req: models.CreateConfigRequest{OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30, MinBookingNoticeMinutes: 20000}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockConfigRepo{}
			_, err := NewService(repo, testDefaults, nopLogger{}).Create(ctx, &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		repo := &mockConfigRepo{}
		existing := &domain.ScheduleConfig{ID: 1, OpenTime: "09:00", CloseTime: "18:00", IsOpen: true, SlotGranularityMinutes: 30}
		repo.On("GetByID", ctx, int64(1)).Return(existing, nil)
		repo.On("Update", ctx, int64(1), mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
			return c.CloseTime == "20:00" && c.OpenTime == "09:00"
		})).Return(existing, nil)

		resp, err := NewService(repo, testDefaults, nopLogger{}).Update(ctx, 1, &models.UpdateConfigRequest{
			CloseTime: ptr.Ptr("20:00"),
		})

		require.NoError(t, err)
		assert.Equal(t, "20:00", resp.CloseTime)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("GetByID", ctx, int64(9)).Return(nil, configRepo.ErrConfigNotFound)

		_, err := NewService(repo, testDefaults, nopLogger{}).Update(ctx, 9, &models.UpdateConfigRequest{})

		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("invalid result", func(t *testing.T) {
		repo := &mockConfigRepo{}
		repo.On("GetByID", ctx, int64(1)).Return(&domain.ScheduleConfig{
			ID: 1, OpenTime: "09:00", CloseTime: "18:00", SlotGranularityMinutes: 30,
		}, nil)

		_, err := NewService(repo, testDefaults, nopLogger{}).Update(ctx, 1, &models.UpdateConfigRequest{
			OpenTime: ptr.Ptr("19:00"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_GetWithHierarchy_Defaults(t *testing.T) {
	ctx := context.Background()
	repo := &mockConfigRepo{}
	repo.On("GetConfigWithHierarchy", ctx, (*int64)(nil), time.Friday).Return(nil, configRepo.ErrConfigNotFound)

	resp, err := NewService(repo, testDefaults, nopLogger{}).GetWithHierarchy(ctx, &models.GetConfigRequest{Weekday: time.Friday})

	require.NoError(t, err)
	assert.Equal(t, "default", resp.Level)
	assert.Equal(t, "09:00", resp.OpenTime)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mockConfigRepo{}
	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("Delete", ctx, int64(2)).Return(configRepo.ErrConfigNotFound)

	svc := NewService(repo, testDefaults, nopLogger{})

	assert.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrConfigNotFound)
}
