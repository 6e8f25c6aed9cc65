package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRunner(t *testing.T, opts ...func(*sqlmock.Sqlmock)) (*MigrationRunner, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, opt := range opts {
		opt(&mock)
	}

	return NewMigrationRunner(db), mock
}

// shrinkRetries lowers the ping retry budget for the duration of a test
func shrinkRetries(t *testing.T, retries int) {
	t.Helper()

	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 50 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner_DefaultPaths(t *testing.T) {
	runner, _ := newMockRunner(t)

	assert.Equal(t, migrationsPath, runner.migrationsPath)
	assert.Equal(t, seedsPath, runner.seedsPath)
}

func TestNewMigrationRunner_EnvOverrides(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", "custom/migrations")
	t.Setenv("SEEDS_PATH", "custom/seeds")

	runner, _ := newMockRunner(t)

	assert.Equal(t, "custom/migrations", runner.migrationsPath)
	assert.Equal(t, "custom/seeds", runner.seedsPath)
}

func TestWaitForDatabase_Success(t *testing.T) {
	runner, mock := newMockRunner(t)
	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	shrinkRetries(t, 2)

	runner, mock := newMockRunner(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	shrinkRetries(t, 2)

	runner, mock := newMockRunner(t)
	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err := runner.WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	runner, _ := newMockRunner(t)
	runner.migrationsPath = "/nonexistent/path/to/migrations"

	// A missing directory is skipped so AutoMigrate can take over
	assert.NoError(t, runner.RunMigrations())
}

func TestLoadSeeds_DisabledByEnvironment(t *testing.T) {
	t.Setenv("SEED_DATABASE", "false")

	runner, _ := newMockRunner(t)

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	t.Setenv("SEED_DATABASE", "true")

	runner, _ := newMockRunner(t)
	runner.seedsPath = "/nonexistent/seeds/path"

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_NoSeedFiles(t *testing.T) {
	t.Setenv("SEED_DATABASE", "true")

	runner, _ := newMockRunner(t)
	runner.seedsPath = t.TempDir()

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_SuccessfulExecution(t *testing.T) {
	t.Setenv("SEED_DATABASE", "true")

	seedDir := t.TempDir()
	seedSQL := "INSERT INTO accounts (account_number, owner_name, email, balance)\n" +
		"VALUES ('ACC000000001', 'Test Owner', 'test@example.com', 1000.00)\n" +
		"ON CONFLICT (account_number) DO NOTHING;\n"
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "001_test_data.sql"), []byte(seedSQL), 0644))

	runner, mock := newMockRunner(t)
	runner.seedsPath = seedDir
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ExecutionFailureIsContinued(t *testing.T) {
	t.Setenv("SEED_DATABASE", "true")

	seedDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "001_bad_data.sql"),
		[]byte("INSERT INTO nonexistent_table VALUES (1);"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "002_good_data.sql"),
		[]byte("INSERT INTO accounts VALUES ('test');"), 0644))

	runner, mock := newMockRunner(t)
	runner.seedsPath = seedDir
	mock.ExpectExec("INSERT INTO nonexistent_table").WillReturnError(errors.New("table does not exist"))
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(0, 1))

	// One failing seed file must not abort the rest
	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ReadFileError(t *testing.T) {
	t.Setenv("SEED_DATABASE", "true")

	seedDir := t.TempDir()
	// A directory with a .sql suffix forces the read to fail
	require.NoError(t, os.Mkdir(filepath.Join(seedDir, "001_invalid.sql"), 0755))

	runner, _ := newMockRunner(t)
	runner.seedsPath = seedDir

	err := runner.LoadSeeds()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read seed file")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	t.Setenv("AUTO_MIGRATE", "false")

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, RunMigrationsIfEnabled(db))
}

func TestRunMigrationsIfEnabled_DatabaseNotReady(t *testing.T) {
	t.Setenv("AUTO_MIGRATE", "true")
	shrinkRetries(t, 2)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err = RunMigrationsIfEnabled(db)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database readiness check failed")
}

func TestGetMigrationStatus_DirectoryNotFound(t *testing.T) {
	runner, _ := newMockRunner(t)
	runner.migrationsPath = "/nonexistent/migrations"

	_, _, err := runner.GetMigrationStatus()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}
