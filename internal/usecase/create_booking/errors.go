package create_booking

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrRoomNotInPackage возвращается, когда комната не относится к пакету
	ErrRoomNotInPackage = errors.New("create_booking: room does not belong to package")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrOutsideGrid возвращается, когда слот выходит за границы сетки
	ErrOutsideGrid = errors.New("create_booking: slot is outside the booking grid")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с занятым
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidConfiguration возвращается, когда сохраненная сетка некорректна
	ErrInvalidConfiguration = errors.New("create_booking: invalid slot grid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
