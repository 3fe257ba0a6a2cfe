package get_availability

import "errors"

var (
	// ErrInvalidType возвращается, если тип не TRYOUT и не PICKUP
	ErrInvalidType = errors.New("get_availability: invalid appointment type")

	// ErrInvalidDate возвращается при отсутствующей дате
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
