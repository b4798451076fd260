package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда ограничение БД обнаружило пересечение бронирований мастера
	ErrOverlap = errors.New("booking.repository: booking overlaps another booking of the staff member")

	// ErrDuplicateReference возвращается при совпадении кода бронирования
	ErrDuplicateReference = errors.New("booking.repository: duplicate booking reference")

	// ErrReferenceExhausted возвращается, если не удалось подобрать уникальный код бронирования
	ErrReferenceExhausted = errors.New("booking.repository: unable to generate unique reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
