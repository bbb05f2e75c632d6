package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store opens one sqlite database and exposes the three repository
// implementations over it.
type Store struct {
	db *sql.DB

	Users   *UserStore
	Tests   *TestStore
	Results *ResultStore
}

func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "drivetest.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{
		db:      db,
		Users:   &UserStore{db: db},
		Tests:   &TestStore{db: db},
		Results: &ResultStore{db: db},
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
