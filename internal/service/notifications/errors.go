package notifications

import "errors"

var (
	// ErrQueueFull возвращается, если очередь исходящих писем переполнена
	ErrQueueFull = errors.New("notifications: outbox queue is full")

	// ErrClosed возвращается при постановке письма в закрытую очередь
	ErrClosed = errors.New("notifications: outbox is closed")

	// ErrRender возвращается при ошибке рендеринга шаблона
	ErrRender = errors.New("notifications: render template")
)
