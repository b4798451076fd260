package scheduling

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AvailabilityQuery inputs of the availability engine
type AvailabilityQuery struct {
	StaffID            int64
	Date               time.Time // calendar day, interpreted in Location
	DurationMinutes    int
	Bookings           []*domain.Booking
	Hours              domain.BusinessHours
	GranularityMinutes int
	NotBefore          time.Time      // slots starting earlier are skipped; zero disables
	ExcludeBookingID   *int64         // booking being moved, ignored as an obstacle
	Location           *time.Location // business timezone, UTC when nil
}

// AvailableSlots yields the free windows of DurationMinutes for the staff member, in order.
// Candidates start at Open and step by GranularityMinutes; a candidate is dropped when it ends
// after Close, overlaps an occupying booking or starts before NotBefore.
// The sequence is finite, restartable and depends only on q.
func AvailableSlots(q AvailabilityQuery) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		if q.DurationMinutes <= 0 || q.GranularityMinutes <= 0 {
			return
		}
		if q.DurationMinutes > q.Hours.OpenMinutes() {
			return
		}

		loc := q.Location
		if loc == nil {
			loc = time.UTC
		}
		day := q.Date.In(loc)
		open := q.Hours.Open.On(day, loc)
		closeAt := q.Hours.Close.On(day, loc)
		duration := time.Duration(q.DurationMinutes) * time.Minute
		step := time.Duration(q.GranularityMinutes) * time.Minute

		busy := occupying(q.StaffID, q.Bookings, q.ExcludeBookingID)

		for t := open; t.Before(closeAt); t = t.Add(step) {
			end := t.Add(duration)
			if end.After(closeAt) {
				break
			}
			if !q.NotBefore.IsZero() && t.Before(q.NotBefore) {
				continue
			}
			if overlapsAny(t, end, busy) {
				continue
			}
			if !yield(domain.Slot{StartTime: t, EndTime: end}) {
				return
			}
		}
	}
}

// ComputeAvailableSlots collects AvailableSlots; an empty result is not an error
func ComputeAvailableSlots(q AvailabilityQuery) []domain.Slot {
	slots := slices.Collect(AvailableSlots(q))
	if slots == nil {
		return []domain.Slot{}
	}
	return slots
}

func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
