// Package store persists assessment results and context bridge tickets
// in a local SQLite database. Scores are stored as indexed columns for
// querying; the full records ride along as JSON.
package store

import (
	"database/sql"
	"embed"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const DataFileName = "symbi.db"

//go:embed sql/*
var ddl embed.FS

// Store is a handle to one database file. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the schema on first use.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path not specified")
	}

	fresh := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fresh = true
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}

	if fresh {
		slog.Debug("creating db schema", "path", path)
		b, err := ddl.ReadFile("sql/ddl.sql")
		if err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to read the schema creation file")
		}
		if _, err := db.Exec(string(b)); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to create database schema in: %s", path)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
