package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	StaffID       int64   `json:"staffId"`
	ServiceID     int64   `json:"serviceId"`
	StartTime     string  `json:"startTime"` // RFC 3339, "2024-06-01T10:00:00Z"
	CouponCode    *string `json:"couponCode,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	CustomerID      int64   `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone,omitempty"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    string  `json:"servicePrice"`
	DiscountAmount  string  `json:"discountAmount"`
	FinalAmount     string  `json:"finalAmount"`
	CouponCode      *string `json:"couponCode,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictDetails детали ответа 409
type ConflictDetails struct {
	ConflictingBookingIDs []int64 `json:"conflictingBookingIds,omitempty"`
}

// CouponDetails детали ответа при отказе купона
type CouponDetails struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:    customerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		StartTime:     startTime,
		CouponCode:    r.CouponCode,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		CustomerID:      resp.CustomerID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice.StringFixed(2),
		DiscountAmount:  resp.DiscountAmount.StringFixed(2),
		FinalAmount:     resp.FinalAmount.StringFixed(2),
		CouponCode:      resp.CouponCode,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
