package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64     // ID клиента (из заголовка X-User-ID)
	CustomerName  string    // Имя клиента
	CustomerPhone string    // Телефон клиента (опционально)
	StaffID       int64     // ID мастера
	ServiceID     int64     // ID услуги
	StartTime     time.Time // Начало бронирования
	CouponCode    *string   // Код купона (опционально)
	Notes         *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string
	CustomerID      int64
	CustomerName    string
	CustomerPhone   string
	StaffID         int64
	ServiceID       int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги и расчет стоимости
	ServiceName    string
	ServicePrice   decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	CouponCode     *string
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: b.DurationMinutes(),
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		DiscountAmount:  b.DiscountAmount,
		FinalAmount:     b.FinalAmount,
		CouponCode:      b.CouponCode,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
