package change_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном ID или статусе
	ErrInvalidInput = errors.New("change_status: invalid input data")

	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("change_status: appointment not found")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = errors.New("change_status: invalid status transition")

	// ErrNotShippingAppointment возвращается при попытке отправить не SHIPPING запись
	ErrNotShippingAppointment = errors.New("change_status: not a shipping appointment")

	// ErrMissingTracking возвращается, когда для отправки не указан трек-номер
	ErrMissingTracking = errors.New("change_status: tracking number is required")

	// ErrMissingTripLink возвращается, когда для PICAP не указана ссылка на поездку
	ErrMissingTripLink = errors.New("change_status: trip link is required for PICAP")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_status: internal error")
)
