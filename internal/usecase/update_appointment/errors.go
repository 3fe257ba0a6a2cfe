package update_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном ID или значении поля
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("update_appointment: invalid email")

	// ErrInvalidPhone возвращается, если в телефоне нет цифр
	ErrInvalidPhone = errors.New("update_appointment: invalid phone")

	// ErrInvalidID возвращается, если в номере документа нет цифр
	ErrInvalidID = errors.New("update_appointment: invalid id number")

	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("update_appointment: appointment not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
