package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrCannotReschedule возвращается, когда бронирование уже не в статусе scheduled
	ErrCannotReschedule = errors.New("update_booking: booking cannot be rescheduled")

	// ErrSalonClosed возвращается, когда мастер не работает в этот день
	ErrSalonClosed = errors.New("update_booking: salon is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда новое время не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("update_booking: booking is outside business hours")

	// ErrInPast возвращается при переносе на прошедшее время
	ErrInPast = errors.New("update_booking: booking time is in the past")

	// ErrTooLateToBook возвращается, когда нарушено minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("update_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("update_booking: date is too far in the future")

	// ErrSlotConflict возвращается, когда мастер занят в новое время
	ErrSlotConflict = errors.New("update_booking: slot conflicts with existing bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
