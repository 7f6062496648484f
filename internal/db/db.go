package db

import (
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite file at path and verifies the connection.
// The returned pool is shared by every repository and must be closed once on shutdown.
func Open(path string, maxOpenConns, maxIdleConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// dsn builds a SQLite URI for path. Characters such as '?', '#' and '%' in the
// file name are percent-encoded so they cannot be read as query or fragment.
func dsn(path string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		OmitHost: true,
		RawQuery: "_foreign_keys=on&_busy_timeout=5000",
	}
	return u.String()
}
