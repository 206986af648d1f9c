package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE "user" (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		"emailVerified" BOOLEAN NOT NULL DEFAULT false,
		image TEXT,
		"isAnonymous" BOOLEAN NOT NULL DEFAULT false,
		"createdAt" DATETIME,
		"updatedAt" DATETIME
	);`)
}

func createAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE account (
		id TEXT PRIMARY KEY,
		"userId" TEXT NOT NULL,
		"providerId" TEXT NOT NULL,
		"accountId" TEXT NOT NULL,
		password TEXT,
		"createdAt" DATETIME,
		"updatedAt" DATETIME,
		UNIQUE ("providerId", "accountId")
	);`)
}

func createWalletAddressTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE "walletAddress" (
		id TEXT PRIMARY KEY,
		"userId" TEXT NOT NULL,
		address TEXT NOT NULL,
		"chainId" TEXT NOT NULL,
		"isPrimary" BOOLEAN NOT NULL DEFAULT false,
		"createdAt" DATETIME,
		UNIQUE (address, "chainId")
	);`)
}

func createVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification (
		id TEXT PRIMARY KEY,
		identifier TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL,
		"expiresAt" DATETIME NOT NULL,
		"createdAt" DATETIME,
		"updatedAt" DATETIME
	);`)
}

func createIdentityTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createAccountTable(t, db)
	createWalletAddressTable(t, db)
	createVerificationTable(t, db)
}

func withFrozenTime(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	orig := timeNow
	timeNow = func() time.Time { return current }
	t.Cleanup(func() { timeNow = orig })
	return &current
}
