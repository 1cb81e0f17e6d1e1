package stores

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/taskedit/internal/data/db"
)

// ErrNotFound is returned when a task is not in the library.
var ErrNotFound = fmt.Errorf("task not found: %w", sql.ErrNoRows)

// IsBusyError reports whether err is SQLITE_BUSY.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError reports whether err indicates an unreadable database.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CANTOPEN:
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// IsNotFoundError reports whether err is a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// RecoverFromCorruption moves a corrupt database and its WAL and SHM files
// aside so the next open starts fresh. It returns the backup path.
func RecoverFromCorruption(dataDir string) (string, error) {
	path := filepath.Join(dataDir, db.FileName)
	backup := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		err := os.Rename(path+suffix, backup+suffix)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		// a stale WAL or SHM next to a fresh database breaks the next open
		if suffix != "" {
			if rmErr := os.Remove(path + suffix); rmErr == nil {
				continue
			}
		}
		return "", fmt.Errorf("move %s aside: %w", path+suffix, err)
	}

	return backup, nil
}
