package notificationservice

import "time"

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingRescheduled   EventType = "booking_rescheduled"
	EventBookingCancelled     EventType = "booking_cancelled"
	EventBookingStatusChanged EventType = "booking_status_changed"
)

// BookingEvent событие, отправляемое в NotificationService
type BookingEvent struct {
	Type          EventType `json:"type"`
	BookingID     int64     `json:"booking_id"`
	Reference     string    `json:"reference"`
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	StaffID       int64     `json:"staff_id"`
	ServiceName   string    `json:"service_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	FinalAmount   string    `json:"final_amount"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
