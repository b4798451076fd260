package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestBookingWindow_CheckStart(t *testing.T) {
	now := at(10, 0)
	w := BookingWindow{MinNoticeMinutes: 60, AdvanceBookingDays: 7}

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{name: "past", start: at(9, 0), wantErr: ErrInPast},
		{name: "inside notice", start: at(10, 30), wantErr: ErrTooLateToBook},
		{name: "exactly at notice", start: at(11, 0)},
		{name: "last allowed day", start: at(12, 0).AddDate(0, 0, 7)},
		{name: "beyond advance window", start: at(12, 0).AddDate(0, 0, 8), wantErr: ErrTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.CheckStart(tt.start, now, time.UTC)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingWindow_CheckDate(t *testing.T) {
	now := at(17, 0)

	assert.NoError(t, BookingWindow{}.CheckDate(at(0, 0), now, time.UTC), "today is allowed")
	assert.ErrorIs(t, BookingWindow{}.CheckDate(at(0, 0).AddDate(0, 0, -1), now, time.UTC), ErrInPast)
	assert.NoError(t, BookingWindow{}.CheckDate(at(0, 0).AddDate(1, 0, 0), now, time.UTC), "0 means unlimited")
	assert.ErrorIs(t, BookingWindow{AdvanceBookingDays: 1}.CheckDate(at(0, 0).AddDate(0, 0, 2), now, time.UTC), ErrTooFarInFuture)
}

func TestBookingWindow_EarliestStart(t *testing.T) {
	assert.Equal(t, at(10, 45), BookingWindow{MinNoticeMinutes: 45}.EarliestStart(at(10, 0)))
}

func TestBookingWindow_CheckInterval(t *testing.T) {
	now := at(8, 0)
	w := BookingWindow{MinNoticeMinutes: 60, AdvanceBookingDays: 7}
	hours := domain.BusinessHours{Open: types.MustTimeString("09:00"), Close: types.MustTimeString("18:00"), IsOpen: true}

	tests := []struct {
		name       string
		hours      domain.BusinessHours
		start, end time.Time
		wantErr    error
	}{
		{name: "inside hours", hours: hours, start: at(9, 0), end: at(10, 0)},
		{name: "ends at closing", hours: hours, start: at(17, 0), end: at(18, 0)},
		{name: "closed day", hours: domain.BusinessHours{}, start: at(10, 0), end: at(11, 0), wantErr: ErrClosed},
		{name: "before opening", hours: hours, start: at(8, 30), end: at(9, 30), wantErr: ErrOutsideBusinessHours},
		{name: "past closing", hours: hours, start: at(17, 30), end: at(18, 30), wantErr: ErrOutsideBusinessHours},
		{name: "beyond advance window", hours: hours, start: at(10, 0).AddDate(0, 0, 8), end: at(11, 0).AddDate(0, 0, 8), wantErr: ErrTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.CheckInterval(tt.hours, tt.start, tt.end, now, time.UTC)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingWindow_CheckIntervalNotice(t *testing.T) {
	hours := domain.BusinessHours{Open: types.MustTimeString("09:00"), Close: types.MustTimeString("18:00"), IsOpen: true}
	w := BookingWindow{MinNoticeMinutes: 60}

	err := w.CheckInterval(hours, at(10, 30), at(11, 30), at(10, 0), time.UTC)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	err = w.CheckInterval(hours, at(9, 30), at(10, 30), at(10, 0), time.UTC)
	assert.ErrorIs(t, err, ErrInPast)
}

func TestWindowOf(t *testing.T) {
	w := WindowOf(&domain.ScheduleConfig{MinBookingNoticeMinutes: 30, AdvanceBookingDays: 14})
	assert.Equal(t, BookingWindow{MinNoticeMinutes: 30, AdvanceBookingDays: 14}, w)
}
