package get_available_slots

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("get_available_slots: package not found")

	// ErrRoomNotInPackage возвращается, когда комната не относится к пакету
	ErrRoomNotInPackage = errors.New("get_available_slots: room does not belong to package")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidConfiguration возвращается, когда сохраненная сетка некорректна
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid slot grid configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
