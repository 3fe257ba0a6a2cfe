package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript увеличивает счетчик окна и выставляет TTL при первом попадании
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// peekScript читает счетчик окна без изменения
var peekScript = redis.NewScript(`
return tonumber(redis.call("GET", KEYS[1]) or "0")
`)

// Limiter ограничитель с фиксированным окном поверх Redis
type Limiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

// NewLimiter создает ограничитель: не больше limit запросов на ключ за window
func NewLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *Limiter {
	if limit <= 0 {
		limit = 2
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow учитывает запрос и сообщает, укладывается ли он в лимит
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.incr(ctx, l.prefix+":"+key)
	if err != nil {
		return false, err
	}
	return count <= int64(l.limit), nil
}

// Exceeded сообщает, исчерпан ли лимит ключа, не учитывая сам запрос.
// Нужен там, где считаются только неудачные попытки.
func (l *Limiter) Exceeded(ctx context.Context, key string) (bool, error) {
	res, err := peekScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedis, err)
	}
	count, err := toInt64(res)
	if err != nil {
		return false, err
	}
	return count >= int64(l.limit), nil
}

// Limit максимальное число запросов на ключ за окно
func (l *Limiter) Limit() int {
	return l.limit
}

// Window длительность окна, используется для Retry-After
func (l *Limiter) Window() time.Duration {
	return l.window
}

func (l *Limiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedis, err)
	}
	return toInt64(res)
}

func toInt64(res interface{}) (int64, error) {
	switch v := res.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnexpectedResult, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnexpectedResult, res)
	}
}
