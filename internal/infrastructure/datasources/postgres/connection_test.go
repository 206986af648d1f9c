package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/Exponential-Science/better-auth-hedera/internal/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func withHooks(t *testing.T) {
	t.Helper()
	origOpen := openGorm
	origPing := dbPing
	t.Cleanup(func() {
		openGorm = origOpen
		dbPing = origPing
	})
}

func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable",
	}
}

func openSQLite(string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
}

func TestNewConnection_OpenFailure(t *testing.T) {
	withHooks(t)
	var gotDSN string
	openGorm = func(dsn string) (*gorm.DB, error) {
		gotDSN = dsn
		return nil, errors.New("open failed")
	}

	db, err := NewConnection(testConfig())
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to open database")
	require.Equal(t, "postgres://u:p@localhost:5432/d?sslmode=disable", gotDSN)
}

func TestNewConnection_PingFailure(t *testing.T) {
	withHooks(t)
	openGorm = openSQLite
	dbPing = func(*sql.DB) error { return errors.New("connection refused") }

	db, err := NewConnection(testConfig())
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_OK(t *testing.T) {
	withHooks(t)
	openGorm = openSQLite

	db, err := NewConnection(testConfig())
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
