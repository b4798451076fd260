package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// BookingWindow ограничения на то, когда можно бронировать
type BookingWindow struct {
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = без ограничений
}

// WindowOf окно бронирования из действующей настройки расписания
func WindowOf(cfg *domain.ScheduleConfig) BookingWindow {
	return BookingWindow{
		MinNoticeMinutes:   cfg.MinBookingNoticeMinutes,
		AdvanceBookingDays: cfg.AdvanceBookingDays,
	}
}

// EarliestStart самое раннее допустимое начало бронирования
func (w BookingWindow) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(w.MinNoticeMinutes) * time.Minute)
}

// CheckDate проверяет, что по календарному дню date можно показывать слоты
func (w BookingWindow) CheckDate(date, now time.Time, loc *time.Location) error {
	day := startOfDay(date, loc)
	today := startOfDay(now, loc)

	if day.Before(today) {
		return ErrInPast
	}
	if w.AdvanceBookingDays > 0 && day.After(today.AddDate(0, 0, w.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrTooFarInFuture, w.AdvanceBookingDays)
	}
	return nil
}

// CheckStart проверяет конкретное время начала бронирования
func (w BookingWindow) CheckStart(start, now time.Time, loc *time.Location) error {
	if start.Before(now) {
		return ErrInPast
	}
	if start.Before(w.EarliestStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, w.MinNoticeMinutes)
	}
	return w.CheckDate(start, now, loc)
}

// CheckInterval проверяет интервал записи [start, end) целиком:
// день рабочий, интервал внутри рабочих часов, начало внутри окна бронирования
func (w BookingWindow) CheckInterval(hours domain.BusinessHours, start, end, now time.Time, loc *time.Location) error {
	if !hours.IsOpen {
		return ErrClosed
	}
	if !hours.Contains(start, end, loc) {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideBusinessHours, hours.Open, hours.Close)
	}
	return w.CheckStart(start, now, loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
