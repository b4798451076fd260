package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsOccupying returns true if a booking in this status blocks the staff member's time
func (s BookingStatus) IsOccupying() bool {
	return s == StatusScheduled || s == StatusInProgress
}

// Booking represents a salon appointment with one staff member.
// The booked time is the half-open interval [StartTime, EndTime).
type Booking struct {
	ID            int64
	Reference     string // human-readable booking code shown to the customer
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	StaffID       int64
	ServiceID     int64
	StartTime     time.Time
	EndTime       time.Time
	Status        BookingStatus

	// Denormalized pricing, fixed at creation
	ServiceName    string
	ServicePrice   decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	CouponCode     *string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking blocks its staff member's time
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// DurationMinutes returns the booked duration
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.IsOccupying()
}

// CanBeRescheduled returns true if the booking time or staff member can still be changed
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusScheduled
}

// CanTransitionTo reports whether the status change is allowed.
// completed and cancelled are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// StaffBookingsFilter фильтр для получения бронирований мастера
type StaffBookingsFilter struct {
	StaffID         int64          // Обязательный параметр
	From            *time.Time     // Начало периода (включительно), nil - без ограничения
	To              *time.Time     // Конец периода (не включительно), nil - без ограничения
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные и отмененные
}
