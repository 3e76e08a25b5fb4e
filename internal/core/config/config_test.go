package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construction-cms/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRelationalConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: test
log:
  level: debug
storage:
  mode: relational
  db:
    driver: postgres
    dsn: "host=localhost dbname=test"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeRelational, cfg.Storage.Mode)
	assert.Equal(t, "postgres", cfg.Storage.DB.Driver)
	assert.Equal(t, 10, cfg.Storage.DB.MaxOpenConns, "pool defaults apply")
	assert.Equal(t, "data/", cfg.Storage.S3.KeyPrefix)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, `
storage:
  mode: hybrid
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, storage.ErrBadConfig)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Storage{}.Validate(), storage.ErrBadConfig)

	assert.ErrorIs(t, Storage{
		Mode: ModeRelational,
		DB:   DB{Driver: "postgres"},
	}.Validate(), storage.ErrBadConfig, "missing dsn")

	assert.ErrorIs(t, Storage{
		Mode: ModeRelational,
		DB:   DB{Driver: "oracle", DSN: "x"},
	}.Validate(), storage.ErrBadConfig, "unsupported driver")

	assert.NoError(t, Storage{
		Mode: ModeRelational,
		DB:   DB{Driver: "mysql", DSN: "x"},
	}.Validate())

	err := Storage{
		Mode: ModeDocument,
		S3:   S3{Bucket: "b"},
	}.Validate()
	require.ErrorIs(t, err, storage.ErrBadConfig)
	assert.Contains(t, err.Error(), "region")

	assert.NoError(t, Storage{
		Mode: ModeDocument,
		S3:   S3{Bucket: "b", Region: "r", AccessKey: "a", SecretKey: "s"},
	}.Validate())
}
