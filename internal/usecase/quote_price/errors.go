package quote_price

import "errors"

var (
	// ErrEntityNotFound возвращается, когда пакет или аттракцион не найден в каталоге
	ErrEntityNotFound = errors.New("quote_price: entity not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
