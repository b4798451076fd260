package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrInvalidInterval возвращается, когда конец бронирования не позже начала
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrSalonClosed возвращается, когда мастер не работает в этот день
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда бронирование не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: booking is outside business hours")

	// ErrInPast возвращается при попытке забронировать прошедшее время
	ErrInPast = errors.New("create_booking: booking time is in the past")

	// ErrTooLateToBook возвращается, когда нарушено minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotConflict возвращается, когда мастер занят в выбранное время.
	// Если конфликт найден проверкой, в цепочке есть *scheduling.ConflictError с ID бронирований
	ErrSlotConflict = errors.New("create_booking: slot conflicts with existing bookings")

	// ErrCouponInvalid возвращается, когда купон нельзя применить (причина в *discount.InvalidError)
	ErrCouponInvalid = errors.New("create_booking: coupon cannot be applied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
