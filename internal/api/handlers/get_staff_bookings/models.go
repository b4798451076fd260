package get_staff_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один календарный день в часовом поясе салона; from/to (RFC 3339) задают произвольный период
func ToServiceRequest(
	staffID int64,
	dateStr string,
	fromStr string,
	toStr string,
	statusStr string,
	includeInactiveStr string,
	loc *time.Location,
) (*models.GetStaffBookingsRequest, error) {
	req := &models.GetStaffBookingsRequest{
		StaffID:         staffID,
		IncludeInactive: false, // По умолчанию только занимающие время
	}

	if dateStr != "" {
		if fromStr != "" || toStr != "" {
			return nil, fmt.Errorf("date cannot be combined with from/to")
		}
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, err
		}
		end := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &end
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
