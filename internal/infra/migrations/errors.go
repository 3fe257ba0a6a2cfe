package migrations

import "errors"

var (
	// ErrCollect возвращается, если каталог миграций не читается или пуст
	ErrCollect = errors.New("migrations: failed to collect migrations")

	// ErrApply возвращается при ошибке наката миграций
	ErrApply = errors.New("migrations: failed to apply migrations")
)
