package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
)

const dialect = "postgres"

// Collect возвращает найденные в dir SQL-миграции по возрастанию версии
func Collect(dir string) (goose.Migrations, error) {
	found, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCollect, dir, err)
	}
	return found, nil
}

// Apply накатывает все непримененные миграции из dir.
// Вывод goose перенаправляется в log.
func Apply(ctx context.Context, db *sql.DB, dir string, log Logger) error {
	found, err := Collect(dir)
	if err != nil {
		return err
	}

	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("%w: set dialect: %v", ErrApply, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	log.Info("Migrations applied (dir=%s, files=%d)", dir, len(found))
	return nil
}

// gooseLogger адаптер логгера сервиса под goose.Logger.
// Fatalf не завершает процесс: решение принимает вызывающий код по ошибке Apply.
type gooseLogger struct {
	log Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error(strings.TrimSuffix(format, "\n"), v...)
}
