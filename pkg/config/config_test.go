package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "bank_system.db", cfg.DB.Path)
	assert.True(t, cfg.DB.ForeignKeys)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_IgnoresUnprefixedVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")
	t.Setenv("FOREIGN_KEYS", "false")
	t.Setenv("LEVEL", "8")
	t.Setenv("FORMAT", "json")
	t.Setenv("TIME_FORMAT", "15:04")
	t.Setenv("PREFIX", "[other]")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bank_system.db", cfg.DB.Path)
	assert.True(t, cfg.DB.ForeignKeys)
	assert.Equal(t, 0, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Log.TimeFormat)
	assert.Equal(t, "[banksystem]", cfg.Log.Prefix)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_PATH", "/tmp/bank.db")
	t.Setenv("DATABASE_FOREIGN_KEYS", "false")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "4")
	t.Setenv("LOG_TIME_FORMAT", "15:04")
	t.Setenv("LOG_PREFIX", "[bank]")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Log.Level)
	assert.Equal(t, "15:04", cfg.Log.TimeFormat)
	assert.Equal(t, "[bank]", cfg.Log.Prefix)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "/tmp/bank.db", cfg.DB.Path)
	assert.False(t, cfg.DB.ForeignKeys)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"),
		[]byte("DATABASE_PATH=from-file.db\n"), 0o600))
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)
	// godotenv does not override variables that are already set
	t.Setenv("DATABASE_PATH", "")
	require.NoError(t, os.Unsetenv("DATABASE_PATH"))

	cfg, err := Load(".env.missing", ".env.test")
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DB.Path)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("unknown env", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestFindEnvTest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0o600))
	nested := filepath.Join(dir, "x")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	found, err := FindEnvTest("")
	require.NoError(t, err)
	assert.Equal(t, resolve(t, filepath.Join(dir, ".env")), resolve(t, found))

	_, err = FindEnvTest("definitely-not-here.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// resolve follows symlinks so temp dirs compare equal on macOS.
func resolve(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}
