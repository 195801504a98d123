package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// InitSchema creates the full current schema in one shot. The server evolves
// the schema through Migrate; this is for the CLI and tests, where no
// migrations directory is available.
func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		titulo TEXT NOT NULL,
		descripcion TEXT NOT NULL,
		imagen TEXT NOT NULL,
		precio_original REAL NOT NULL DEFAULT 0,
		precio_descuento REAL NOT NULL DEFAULT 0,
		categoria TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		activo BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin'
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		token TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL REFERENCES users(id),
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
