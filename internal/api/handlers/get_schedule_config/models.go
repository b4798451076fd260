package get_schedule_config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// День задается либо номером дня недели (0 = воскресенье), либо датой YYYY-MM-DD
func ToServiceRequest(staffIDStr, weekdayStr, dateStr string, loc *time.Location) (*models.GetConfigRequest, error) {
	req := &models.GetConfigRequest{}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	switch {
	case weekdayStr != "" && dateStr != "":
		return nil, fmt.Errorf("weekday cannot be combined with date")

	case weekdayStr != "":
		weekday, err := strconv.Atoi(weekdayStr)
		if err != nil {
			return nil, err
		}
		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("weekday %d out of range", weekday)
		}
		req.Weekday = time.Weekday(weekday)

	case dateStr != "":
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, err
		}
		req.Weekday = date.Weekday()

	default:
		return nil, fmt.Errorf("weekday or date is required")
	}

	return req, nil
}
