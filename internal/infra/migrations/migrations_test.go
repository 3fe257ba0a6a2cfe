package migrations

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestCollect_RepositoryMigrations(t *testing.T) {
	found, err := Collect(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, found)

	assert.Equal(t, int64(1), found[0].Version)
	assert.Equal(t, "001_init.sql", filepath.Base(found[0].Source))
}

func TestCollect_RepositoryMigrationsAnnotated(t *testing.T) {
	found, err := Collect(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)

	for _, m := range found {
		body, err := os.ReadFile(m.Source)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", m.Source)
		assert.Contains(t, string(body), "-- +goose Down", m.Source)
	}
}

func TestCollect_MissingDir(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "absent"))

	assert.ErrorIs(t, err, ErrCollect)
}

func TestCollect_EmptyDir(t *testing.T) {
	_, err := Collect(t.TempDir())

	assert.ErrorIs(t, err, ErrCollect)
}

func TestApply_FailsBeforeTouchingDatabase(t *testing.T) {
	// db не нужен: пустой каталог отсекается до обращения к БД
	err := Apply(context.Background(), nil, t.TempDir(), logger.Nop())

	assert.ErrorIs(t, err, ErrCollect)
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	l := gooseLogger{log: logger.NewWithWriter(&buf, "info")}

	l.Printf("goose: successfully migrated database to version: %d\n", 1)
	l.Fatalf("goose: broken %s", "file")

	out := buf.String()
	assert.Contains(t, out, "successfully migrated database to version: 1")
	assert.Contains(t, out, "goose: broken file")
	assert.NotContains(t, out, "version: 1\\n")
}
