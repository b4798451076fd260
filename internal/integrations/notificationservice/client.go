package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotificationService
// Клиент с пустым baseURL ничего не отправляет
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled возвращает true, если адрес сервиса задан
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// SendBookingEvent отправляет событие бронирования
func (c *Client) SendBookingEvent(ctx context.Context, event BookingEvent) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications/bookings", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyWithGracefulDegradation отправляет событие, не прерывая бизнес-операцию
// Бронирование к этому моменту уже зафиксировано, поэтому любая ошибка только логируется
func (c *Client) NotifyWithGracefulDegradation(ctx context.Context, eventType EventType, booking *domain.Booking) error {
	if !c.Enabled() {
		return nil
	}

	event := NewBookingEvent(eventType, booking)
	if err := c.SendBookingEvent(ctx, event); err != nil {
		c.log.Error("NotificationService unavailable, applying graceful degradation for booking id=%d event=%s: %v",
			booking.ID, eventType, err)
		return fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, booking.ID, err)
	}

	c.log.Info("Notification %s sent for booking id=%d", eventType, booking.ID)
	return nil
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(eventType EventType, booking *domain.Booking) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		CustomerID:    booking.CustomerID,
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		StaffID:       booking.StaffID,
		ServiceName:   booking.ServiceName,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Status:        string(booking.Status),
		FinalAmount:   booking.FinalAmount.StringFixed(2),

		CancellationReason: ptr.Deref(booking.CancellationReason, ""),
	}
}
