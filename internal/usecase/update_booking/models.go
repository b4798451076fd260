package update_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на перенос бронирования или смену мастера
type Request struct {
	BookingID    int64
	UserID       int64      // Пользователь, выполняющий перенос
	IsAdmin      bool       // Администратор может переносить любые бронирования
	NewStartTime *time.Time // Новое время начала (nil - без изменений)
	NewStaffID   *int64     // Новый мастер (nil - без изменений)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	Reference       string
	CustomerID      int64
	StaffID         int64
	ServiceID       int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	ServiceName     string
	FinalAmount     decimal.Decimal
	Rescheduled     bool // false, если время и мастер не изменились
	UpdatedAt       time.Time
}

func toResponse(b *domain.Booking, rescheduled bool) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes(),
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		FinalAmount:     b.FinalAmount,
		Rescheduled:     rescheduled,
		UpdatedAt:       b.UpdatedAt,
	}
}
