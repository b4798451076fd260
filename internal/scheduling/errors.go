package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInterval возвращается, если конец интервала не позже начала
	ErrInvalidInterval = errors.New("scheduling: invalid interval")

	// ErrConflict возвращается, если интервал пересекается с занятым временем мастера
	ErrConflict = errors.New("scheduling: booking conflict")

	// ErrInPast возвращается при попытке забронировать прошедшее время
	ErrInPast = errors.New("scheduling: time is in the past")

	// ErrTooLateToBook возвращается, когда до начала осталось меньше minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("scheduling: too late to book this slot")

	// ErrTooFarInFuture возвращается, когда дата дальше advanceBookingDays
	ErrTooFarInFuture = errors.New("scheduling: date is too far in the future")

	// ErrOutsideBusinessHours возвращается, когда интервал не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("scheduling: outside business hours")

	// ErrClosed возвращается, когда мастер не работает в этот день
	ErrClosed = errors.New("scheduling: closed on this date")
)

// ConflictError отказ проверки с идентификаторами пересекающихся бронирований
type ConflictError struct {
	StaffID        int64
	ConflictingIDs []int64
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.ConflictingIDs))
	for i, id := range e.ConflictingIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s: staff %d is busy, conflicting bookings [%s]",
		ErrConflict.Error(), e.StaffID, strings.Join(ids, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
