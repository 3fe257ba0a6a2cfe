package ratelimit

import "errors"

var (
	// ErrRedis возвращается при ошибке выполнения скрипта в Redis
	ErrRedis = errors.New("ratelimit: redis error")

	// ErrUnexpectedResult возвращается, если скрипт вернул значение неожиданного типа
	ErrUnexpectedResult = errors.New("ratelimit: unexpected script result")
)
