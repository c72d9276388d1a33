package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// DSN returns the connection string for the database file at path.
func DSN(path string) string {
	return path + pragmas
}

// Storage is the handle to the ledger database. It is constructed once
// and passed to every component that needs it.
type Storage struct {
	DB     *sql.DB
	exec   bob.DB
	Reader *Reader
}

func NewStorage(env *config.Config, log logrus.FieldLogger) (*Storage, error) {
	return Open(env.DatabasePath, log)
}

// Open opens (creating if needed) the sqlite database at path and migrates it.
func Open(path string, log logrus.FieldLogger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(path)

	if err := RunMigrations(dsn, log); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps the
	// per-connection pragmas in force for every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	exec := bob.NewDB(db)
	return &Storage{
		DB:     db,
		exec:   exec,
		Reader: NewReader(exec),
	}, nil
}

// Write opens a new scope. Everything done through the returned Writer
// becomes visible on Commit, or not at all.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin scope: %w", err)
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
