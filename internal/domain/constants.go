package domain

// Default schedule values, used when no configuration row matches
const (
	DefaultOpenTime                = "09:00"
	DefaultCloseTime               = "18:00"
	DefaultSlotGranularityMinutes  = 30
	DefaultAdvanceBookingDays      = 30
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 100
	MaxCouponCodeLength         = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, при которых бронирование занимает время мастера
var OccupyingStatuses = []BookingStatus{
	StatusScheduled,
	StatusInProgress,
}

// InertStatuses статусы, при которых бронирование время не занимает
var InertStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
