package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// memoryBook in-memory booking storage that writes only what the guard accepts
type memoryBook struct {
	nextID   int64
	bookings []*domain.Booking
}

func (m *memoryBook) create(staffID int64, start, end time.Time) bool {
	d, err := CheckConflict(staffID, start, end, nil, m.bookings)
	if err != nil || !d.Accepted {
		return false
	}
	m.nextID++
	m.bookings = append(m.bookings, booking(m.nextID, staffID, start, end, domain.StatusScheduled))
	return true
}

func (m *memoryBook) reschedule(b *domain.Booking, staffID int64, start, end time.Time) bool {
	if !b.CanBeRescheduled() {
		return false
	}
	d, err := CheckConflict(staffID, start, end, &b.ID, m.bookings)
	if err != nil || !d.Accepted {
		return false
	}
	b.StaffID, b.StartTime, b.EndTime = staffID, start, end
	return true
}

func (m *memoryBook) setStatus(b *domain.Booking, status domain.BookingStatus) {
	if b.CanTransitionTo(status) {
		b.Status = status
	}
}

func TestNoDoubleBooking(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	book := &memoryBook{}
	staff := []int64{1, 2, 3}
	statuses := []domain.BookingStatus{
		domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled,
	}

	randomInterval := func() (time.Time, time.Time) {
		start := at(9, 0).Add(time.Duration(rng.Intn(36)*15) * time.Minute)
		return start, start.Add(time.Duration(1+rng.Intn(6)) * 15 * time.Minute)
	}

	accepted := 0
	for i := 0; i < 2000; i++ {
		switch op := rng.Intn(10); {
		case op < 6 || len(book.bookings) == 0:
			start, end := randomInterval()
			if book.create(staff[rng.Intn(len(staff))], start, end) {
				accepted++
			}
		case op < 9:
			start, end := randomInterval()
			b := book.bookings[rng.Intn(len(book.bookings))]
			book.reschedule(b, staff[rng.Intn(len(staff))], start, end)
		default:
			b := book.bookings[rng.Intn(len(book.bookings))]
			book.setStatus(b, statuses[rng.Intn(len(statuses))])
		}
	}

	require.Positive(t, accepted)

	for i, a := range book.bookings {
		for _, b := range book.bookings[i+1:] {
			if a.StaffID != b.StaffID || !a.IsOccupying() || !b.IsOccupying() {
				continue
			}
			require.False(t, Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime),
				"bookings %d and %d overlap for staff %d", a.ID, b.ID, a.StaffID)
		}
	}
}
