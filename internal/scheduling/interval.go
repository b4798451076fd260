package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Adjacent intervals do not overlap; an empty interval overlaps nothing.
// Both the guard and the availability engine decide through this function.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd) &&
		aStart.Before(aEnd) && bStart.Before(bEnd)
}

// Interval half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Validate returns ErrInvalidInterval unless End is strictly after Start
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInterval)
	}
	if !i.End.After(i.Start) {
		return fmt.Errorf("%w: end %s must be after start %s",
			ErrInvalidInterval, i.End.Format(time.RFC3339), i.Start.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports whether the two intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// occupying returns the bookings that block staffID's time, skipping excludeID
func occupying(staffID int64, bookings []*domain.Booking, excludeID *int64) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || b.StaffID != staffID || !b.IsOccupying() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		result = append(result, b)
	}
	return result
}
