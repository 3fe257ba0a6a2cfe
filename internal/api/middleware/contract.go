package middleware

import (
	"context"
	"time"
)

// RateLimiter ограничитель частоты запросов
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Limit() int
	Window() time.Duration
}

// BruteforceLimiter ограничитель, которому нужна проверка без учета запроса
type BruteforceLimiter interface {
	RateLimiter
	Exceeded(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
