package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess проверяет, что пользователь владелец бронирования или администратор
func (a Actor) CanAccess(b *domain.Booking) bool {
	return a.IsAdmin || b.CustomerID == a.UserID
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor              Actor
	CancellationReason *string
}

// UpdateStatusRequest запрос на смену статуса (администратор)
type UpdateStatusRequest struct {
	Status string
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	Actor      Actor
	CustomerID int64
	Status     *string
}

// GetStaffBookingsRequest запрос на получение бронирований мастера
type GetStaffBookingsRequest struct {
	StaffID         int64
	From            *time.Time // начало периода (опционально)
	To              *time.Time // конец периода, не включительно (опционально)
	Status          *string
	IncludeInactive bool // включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStaffBookingsRequest) ToDomainFilter() (domain.StaffBookingsFilter, error) {
	filter := domain.StaffBookingsFilter{
		StaffID:         r.StaffID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	CustomerID      int64  `json:"customerId"`
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	StartTime       string `json:"startTime"` // RFC 3339
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName    string  `json:"serviceName"`
	ServicePrice   string  `json:"servicePrice"`
	DiscountAmount string  `json:"discountAmount"`
	FinalAmount    string  `json:"finalAmount"`
	CouponCode     *string `json:"couponCode,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes(),
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice.StringFixed(2),
		DiscountAmount:     b.DiscountAmount.StringFixed(2),
		FinalAmount:        b.FinalAmount.StringFixed(2),
		CouponCode:         b.CouponCode,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
