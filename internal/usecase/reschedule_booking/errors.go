package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда переносит не владелец
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для бронирования не в статусе booked
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrOutsideGrid возвращается, когда новый слот выходит за границы сетки
	ErrOutsideGrid = errors.New("reschedule_booking: slot is outside the booking grid")

	// ErrSlotNotAvailable возвращается, когда новый слот пересекается с занятым
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidConfiguration возвращается, когда сохраненная сетка некорректна
	ErrInvalidConfiguration = errors.New("reschedule_booking: invalid slot grid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
