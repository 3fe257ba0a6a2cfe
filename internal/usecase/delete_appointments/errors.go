package delete_appointments

import "errors"

var (
	// ErrInvalidIDs возвращается при пустом списке или ID не в формате uuid
	ErrInvalidIDs = errors.New("delete_appointments: invalid ids")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_appointments: internal error")
)
