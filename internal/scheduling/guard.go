package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Decision result of a conflict check
type Decision struct {
	Accepted       bool
	StaffID        int64
	ConflictingIDs []int64 // ordered by booking start time
}

// Err returns nil for an accepted decision and a *ConflictError otherwise
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return &ConflictError{StaffID: d.StaffID, ConflictingIDs: d.ConflictingIDs}
}

// CheckConflict decides whether staffID can take [start, end).
// Only occupying bookings of staffID count; excludeBookingID lets a booking be moved without
// conflicting with itself. Every overlapping booking is reported.
// The caller must run it in the same transaction as the write it guards.
func CheckConflict(
	staffID int64,
	start, end time.Time,
	excludeBookingID *int64,
	bookings []*domain.Booking,
) (Decision, error) {
	if err := (Interval{Start: start, End: end}).Validate(); err != nil {
		return Decision{}, err
	}

	var conflicts []*domain.Booking
	for _, b := range occupying(staffID, bookings, excludeBookingID) {
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			conflicts = append(conflicts, b)
		}
	}

	if len(conflicts) == 0 {
		return Decision{Accepted: true, StaffID: staffID}, nil
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].StartTime.Equal(conflicts[j].StartTime) {
			return conflicts[i].ID < conflicts[j].ID
		}
		return conflicts[i].StartTime.Before(conflicts[j].StartTime)
	})

	ids := make([]int64, len(conflicts))
	for i, b := range conflicts {
		ids[i] = b.ID
	}

	return Decision{Accepted: false, StaffID: staffID, ConflictingIDs: ids}, nil
}
