package update_booking

import (
	"time"

	updateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model, хотя бы одно поле обязательно
type UpdateBookingRequest struct {
	StartTime *string `json:"startTime,omitempty"` // RFC 3339
	StaffID   *int64  `json:"staffId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	CustomerID      int64  `json:"customerId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
	FinalAmount     string `json:"finalAmount"`
	Rescheduled     bool   `json:"rescheduled"`
	UpdatedAt       string `json:"updatedAt"`
}

// ConflictDetails детали ответа 409
type ConflictDetails struct {
	ConflictingBookingIDs []int64 `json:"conflictingBookingIds,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID int64, isAdmin bool) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingID:  bookingID,
		UserID:     userID,
		IsAdmin:    isAdmin,
		NewStaffID: r.StaffID,
	}

	if r.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.NewStartTime = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		CustomerID:      resp.CustomerID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		FinalAmount:     resp.FinalAmount.StringFixed(2),
		Rescheduled:     resp.Rescheduled,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
