package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Traders")
	cfg.Events.Brokers = []string{"localhost:9092"}
	cfg.Checks.CashLedgers = []string{"Cash", "Petty Cash"}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company.Name, got.Company.Name)
	assert.Equal(t, cfg.Storage.Backend, got.Storage.Backend)
	assert.Equal(t, cfg.Ledgers.Mode, got.Ledgers.Mode)
	assert.Equal(t, cfg.Events, got.Events)
	assert.Equal(t, cfg.Import, got.Import)
	assert.Equal(t, cfg.Checks.CashLedgers, got.Checks.CashLedgers)
	assert.Equal(t, cfg.Git, got.Git)
	assert.Equal(t, cfg.Log.Level, got.Log.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Shop")

	assert.Equal(t, "My Shop", cfg.Company.Name)
	assert.Equal(t, "csv", cfg.Storage.Backend)
	assert.Equal(t, "chart", cfg.Ledgers.Mode)
	assert.Equal(t, "none", cfg.Events.Backend)
	assert.Equal(t, "Bank", cfg.Import.BankLedger)
	assert.Equal(t, "Suspense", cfg.Import.Fallback)
	assert.Equal(t, []string{"Cash"}, cfg.Checks.CashLedgers)
	assert.True(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Traders")
	cfg.Storage.DSN = "postgres://secret@db/books"
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Traders")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "mode: chart")
	assert.Contains(t, contents, "auto_commit: true")
	assert.NotContains(t, contents, "secret", "DSN must stay out of the file")
}

func TestApplyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TALLY_STORAGE_BACKEND", "postgres")
	t.Setenv("TALLY_DATABASE_URL", "postgres://u:p@localhost/tally?sslmode=disable")
	t.Setenv("TALLY_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TALLY_LOG_LEVEL", "debug")

	cfg := Default("Env Co")
	cfg.ApplyEnv()

	assert.Equal(t, "postgres", cfg.Storage.Backend)
	assert.Equal(t, "postgres://u:p@localhost/tally?sslmode=disable", cfg.Storage.DSN)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TALLY_SQLITE_PATH=books.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TALLY_SQLITE_PATH") })

	cfg := Default("Env Co")
	cfg.ApplyEnv()
	assert.Equal(t, "books.db", cfg.Storage.Path)
}

func TestValidate_Errors(t *testing.T) {
	cfg := Default("Broken")
	cfg.Storage.Backend = "mongo"
	cfg.Ledgers.Mode = "fancy"
	cfg.Events.Backend = "amqp"
	cfg.Events.URL = "http://localhost"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid storage backend")
	assert.Contains(t, msg, "invalid ledgers mode")
	assert.Contains(t, msg, "invalid AMQP URL")
	assert.Contains(t, msg, "invalid log level")
}

func TestValidate_PostgresNeedsDSN(t *testing.T) {
	cfg := Default("Hosted")
	cfg.Storage.Backend = "postgres"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TALLY_DATABASE_URL")
}

func TestValidate_Kafka(t *testing.T) {
	cfg := Default("Streamed")
	cfg.Events.Backend = "kafka"
	require.Error(t, cfg.Validate())

	cfg.Events.Brokers = []string{"localhost:9092"}
	assert.NoError(t, cfg.Validate())
}
