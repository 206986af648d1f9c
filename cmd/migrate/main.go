package main

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Exponential-Science/better-auth-hedera/internal/config"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	sqlOpen    = sql.Open
	fatalfFn   = log.Fatalf
)

func main() {
	if err := run(); err != nil {
		fatalfFn("migrate: %v", err)
	}
}

func run() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return err
	}

	db, err := sqlOpen("postgres", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := apply(ctx, db, statements(schema))
	if err != nil {
		return err
	}
	log.Printf("Applied %d schema statements", n)
	return nil
}

// apply runs stmts in one transaction
func apply(ctx context.Context, db *sql.DB, stmts []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(stmts), nil
}

// statements splits a schema file on ';'. The schema has no semicolons
// inside literals.
func statements(src string) []string {
	var out []string
	for _, part := range strings.Split(src, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
