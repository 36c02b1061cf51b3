package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Sqlite opens a SQLite database in WAL mode.
// Driver name is "sqlite" (modernc.org/sqlite, pure Go).
func Sqlite(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("db.Sqlite: open: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("db.Sqlite: ping: %w", err)
	}
	// single writer avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	return sqlDB, nil
}
