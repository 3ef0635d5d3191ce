package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots.service: slot not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("slots.service: access denied")

	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = errors.New("slots.service: invalid slot status")

	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("slots.service: invalid input data")

	// ErrInvalidStatusTransition возвращается, когда переход запрещен машиной состояний
	ErrInvalidStatusTransition = errors.New("slots.service: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots.service: internal error")
)
