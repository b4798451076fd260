package update_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, id int64, staffID int64, start, end time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, id, staffID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type staticSchedule struct {
	config *domain.ScheduleConfig
}

func (s staticSchedule) Resolve(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.ScheduleConfig, error) {
	return s.config, nil
}

type fakeNotifier struct {
	events []notificationservice.EventType
}

func (f *fakeNotifier) NotifyWithGracefulDegradation(ctx context.Context, eventType notificationservice.EventType, booking *domain.Booking) error {
	f.events = append(f.events, eventType)
	return nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type replayTx struct {
	attempts int
}

func (r replayTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < r.attempts; i++ {
		err = fn(ctx)
	}
	return err
}

type conflictCounter struct {
	sources []string
}

func (c *conflictCounter) IncBookingConflict(source string) { c.sources = append(c.sources, source) }

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2024, 6, 1, h, m, 0, 0, time.UTC)
}

func scheduled() *domain.Booking {
	return &domain.Booking{
		ID:         1,
		Reference:  "ADA-0100",
		CustomerID: 10,
		StaffID:    3,
		StartTime:  at(10, 0),
		EndTime:    at(11, 0),
		Status:     domain.StatusScheduled,
	}
}

func newUseCase(repo *mockBookingRepo, notifier *fakeNotifier) *UseCase {
	return newUseCaseWith(repo, notifier, inlineTx{}, nil)
}

func newUseCaseWith(repo *mockBookingRepo, notifier *fakeNotifier, tx TransactionManager, m Metrics) *UseCase {
	config := &domain.ScheduleConfig{
		OpenTime:                "09:00",
		CloseTime:               "18:00",
		IsOpen:                  true,
		SlotGranularityMinutes:  30,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 60,
	}
	return NewUseCase(repo, staticSchedule{config: config}, notifier, tx, m, time.UTC, nopLogger{}).
		WithTimeProvider(fixedTime{now: at(7, 0)})
}

func TestExecute_RescheduleExcludesItself(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookingRepo{}
	notifier := &fakeNotifier{}
	booking := scheduled()

	repo.On("GetByID", ctx, int64(1)).Return(booking, nil)
	// The booking itself overlaps its new time; it must not block the move
	repo.On("GetByStaffWithFilter", ctx, mock.Anything).Return([]*domain.Booking{booking}, nil)

	moved := scheduled()
	moved.StartTime, moved.EndTime = at(10, 30), at(11, 30)
	repo.On("UpdateSchedule", ctx, int64(1), int64(3), at(10, 30), at(11, 30)).Return(moved, nil)

	resp, err := newUseCase(repo, notifier).Execute(ctx, &Request{
		BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(10, 30)),
	})

	require.NoError(t, err)
	assert.True(t, resp.Rescheduled)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, at(11, 30), resp.EndTime)
	assert.Equal(t, []notificationservice.EventType{notificationservice.EventBookingRescheduled}, notifier.events)
}

func TestExecute_ReassignConflict(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookingRepo{}

	repo.On("GetByID", ctx, int64(1)).Return(scheduled(), nil)
	repo.On("GetByStaffWithFilter", ctx, mock.MatchedBy(func(f domain.StaffBookingsFilter) bool {
		return f.StaffID == 4
	})).Return([]*domain.Booking{
		{ID: 2, StaffID: 4, StartTime: at(10, 30), EndTime: at(11, 0), Status: domain.StatusScheduled},
	}, nil)

	_, err := newUseCase(repo, &fakeNotifier{}).Execute(ctx, &Request{
		BookingID: 1, UserID: 10, NewStaffID: ptr.Ptr(int64(4)),
	})

	require.ErrorIs(t, err, ErrSlotConflict)
	var conflict *scheduling.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{2}, conflict.ConflictingIDs)
	repo.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ConstraintViolation(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookingRepo{}

	repo.On("GetByID", ctx, int64(1)).Return(scheduled(), nil)
	repo.On("GetByStaffWithFilter", ctx, mock.Anything).Return([]*domain.Booking{}, nil)
	repo.On("UpdateSchedule", ctx, int64(1), int64(3), at(12, 0), at(13, 0)).Return(nil, bookingRepo.ErrOverlap)

	_, err := newUseCase(repo, &fakeNotifier{}).Execute(ctx, &Request{
		BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(12, 0)),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_NoChange(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookingRepo{}
	notifier := &fakeNotifier{}
	repo.On("GetByID", ctx, int64(1)).Return(scheduled(), nil)

	resp, err := newUseCase(repo, notifier).Execute(ctx, &Request{
		BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(10, 0)), NewStaffID: ptr.Ptr(int64(3)),
	})

	require.NoError(t, err)
	assert.False(t, resp.Rescheduled)
	assert.Empty(t, notifier.events)
	repo.AssertNotCalled(t, "GetByStaffWithFilter", mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		booking func() *domain.Booking
		req     *Request
		wantErr error
	}{
		{
			name:    "not owner",
			booking: scheduled,
			req:     &Request{BookingID: 1, UserID: 11, NewStartTime: ptr.Ptr(at(12, 0))},
			wantErr: ErrAccessDenied,
		},
		{
			name: "in progress",
			booking: func() *domain.Booking {
				b := scheduled()
				b.Status = domain.StatusInProgress
				return b
			},
			req:     &Request{BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(12, 0))},
			wantErr: ErrCannotReschedule,
		},
		{
			name:    "outside hours",
			booking: scheduled,
			req:     &Request{BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(17, 30))},
			wantErr: ErrOutsideBusinessHours,
		},
		{
			name:    "before opening",
			booking: scheduled,
			req:     &Request{BookingID: 1, IsAdmin: true, NewStartTime: ptr.Ptr(at(7, 30))},
			wantErr: ErrOutsideBusinessHours,
		},
		{
			name:    "beyond advance window",
			booking: scheduled,
			req:     &Request{BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(12, 0).AddDate(0, 0, 40))},
			wantErr: ErrDateTooFarInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := &mockBookingRepo{}
			repo.On("GetByID", ctx, int64(1)).Return(tt.booking(), nil)

			_, err := newUseCase(repo, &fakeNotifier{}).Execute(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_NotFoundAndValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mockBookingRepo{}
	repo.On("GetByID", ctx, int64(2)).Return(nil, bookingRepo.ErrBookingNotFound)
	uc := newUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(ctx, &Request{BookingID: 2, UserID: 10, NewStaffID: ptr.Ptr(int64(4))})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(ctx, &Request{BookingID: 1, UserID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{BookingID: 1, UserID: 10, NewStaffID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConflictCountedOncePerRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("guard", func(t *testing.T) {
		repo := &mockBookingRepo{}
		counter := &conflictCounter{}
		repo.On("GetByID", ctx, int64(1)).Return(scheduled(), nil)
		repo.On("GetByStaffWithFilter", ctx, mock.Anything).Return([]*domain.Booking{
			{ID: 2, StaffID: 4, StartTime: at(10, 30), EndTime: at(11, 0), Status: domain.StatusScheduled},
		}, nil)

		_, err := newUseCaseWith(repo, &fakeNotifier{}, replayTx{attempts: 3}, counter).Execute(ctx, &Request{
			BookingID: 1, UserID: 10, NewStaffID: ptr.Ptr(int64(4)),
		})

		require.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, []string{metrics.ConflictSourceGuard}, counter.sources)
	})

	t.Run("constraint", func(t *testing.T) {
		repo := &mockBookingRepo{}
		counter := &conflictCounter{}
		repo.On("GetByID", ctx, int64(1)).Return(scheduled(), nil)
		repo.On("GetByStaffWithFilter", ctx, mock.Anything).Return([]*domain.Booking{}, nil)
		repo.On("UpdateSchedule", ctx, int64(1), int64(3), at(12, 0), at(13, 0)).Return(nil, bookingRepo.ErrOverlap)

		_, err := newUseCaseWith(repo, &fakeNotifier{}, replayTx{attempts: 2}, counter).Execute(ctx, &Request{
			BookingID: 1, UserID: 10, NewStartTime: ptr.Ptr(at(12, 0)),
		})

		require.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, []string{metrics.ConflictSourceConstraint}, counter.sources)
	})
}
