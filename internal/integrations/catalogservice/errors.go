package catalogservice

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет не найден в каталоге
	ErrPackageNotFound = errors.New("package not found")

	// ErrAttractionNotFound возвращается, когда аттракцион не найден в каталоге
	ErrAttractionNotFound = errors.New("attraction not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
