package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID          int64     // ID мастера
	ServiceID        int64     // ID услуги, задает длительность слота
	Date             time.Time // Календарный день в часовом поясе салона
	ExcludeBookingID *int64    // Переносимое бронирование, не считается занятым временем
}

// Response модель ответа с доступными слотами
type Response struct {
	Date            time.Time
	StaffID         int64
	ServiceID       int64
	DurationMinutes int
	Slots           []Slot
}

// Slot свободное окно [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

func toSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return result
}
