// Package storage persists the photo catalog in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"photokeeper/internal/models"
)

// Storage handles persistence of photo records and scan history.
type Storage struct {
	db     *sql.DB
	dbPath string
}

// NewStorage opens (creating if necessary) the catalog database.
func NewStorage(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{db: db, dbPath: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Current schema version
const schemaVersion = 2

// migrations defines all schema migrations.
// Each migration should be idempotent (safe to run multiple times).
var migrations = []struct {
	version     int
	description string
	up          string
}{
	{
		version:     1,
		description: "Initial schema",
		up:          "", // Handled by base schema creation
	},
	{
		version:     2,
		description: "Add camera column for structural fingerprints",
		up: `
			ALTER TABLE photos ADD COLUMN camera TEXT DEFAULT '';
		`,
	},
}

// init creates the database schema and applies pending migrations.
func (s *Storage) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		mod_time TEXT NOT NULL,
		taken_at TEXT DEFAULT '',
		width INTEGER DEFAULT 0,
		height INTEGER DEFAULT 0,
		content_hash TEXT DEFAULT '',
		structural_fp TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_photos_path ON photos(path);
	CREATE INDEX IF NOT EXISTS idx_photos_content_hash ON photos(content_hash);
	CREATE INDEX IF NOT EXISTS idx_photos_structural_fp ON photos(structural_fp);

	CREATE TABLE IF NOT EXISTS scan_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		folder TEXT NOT NULL,
		scanned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_photos INTEGER NOT NULL,
		total_groups INTEGER NOT NULL,
		total_duplicates INTEGER NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// migrate runs pending schema migrations.
func (s *Storage) migrate() error {
	currentVersion := s.getSchemaVersion()

	for _, m := range migrations {
		if m.version <= currentVersion || m.up == "" {
			continue
		}

		// The column may already exist if the migration ran but the
		// version record was lost.
		if m.version == 2 && s.columnExists("photos", "camera") {
			s.setSchemaVersion(m.version)
			continue
		}

		if _, err := s.db.Exec(m.up); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}

		log.Debug().Int("version", m.version).Str("description", m.description).Msg("applied migration")
		s.setSchemaVersion(m.version)
	}

	return nil
}

// getSchemaVersion returns the current schema version.
func (s *Storage) getSchemaVersion() int {
	var version int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0
	}
	return version
}

// setSchemaVersion records a migration as applied.
func (s *Storage) setSchemaVersion(version int) {
	s.db.Exec(`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, version)
}

// columnExists checks if a column exists in a table.
func (s *Storage) columnExists(table, column string) bool {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?
	`, table, column).Scan(&count)
	if err != nil {
		return false
	}
	return count > 0
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

const photoColumns = `id, path, name, size, mod_time, taken_at, camera, width, height, content_hash, structural_fp`

// SavePhotos inserts or updates photo records by path.
func (s *Storage) SavePhotos(records []*models.PhotoRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO photos (path, name, size, mod_time, taken_at, camera, width, height, content_hash, structural_fp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		takenAt := ""
		if !r.TakenAt.IsZero() {
			takenAt = r.TakenAt.UTC().Format(time.RFC3339Nano)
		}
		_, err := stmt.Exec(
			r.Path,
			r.Name,
			r.Size,
			r.ModTime.UTC().Format(time.RFC3339Nano),
			takenAt,
			r.Camera,
			r.Width,
			r.Height,
			r.ContentHash,
			r.StructuralFP,
		)
		if err != nil {
			return fmt.Errorf("failed to insert photo %s: %w", r.Path, err)
		}
	}

	return tx.Commit()
}

// GetAllPhotos returns every cataloged record, ordered by path.
func (s *Storage) GetAllPhotos() ([]*models.PhotoRecord, error) {
	return s.queryPhotos(`SELECT ` + photoColumns + ` FROM photos ORDER BY path`)
}

// GetPhotosWithHashes returns records that carry at least one hash field,
// so detection can reuse prior enrichment instead of re-reading files.
func (s *Storage) GetPhotosWithHashes() ([]*models.PhotoRecord, error) {
	return s.queryPhotos(`
		SELECT ` + photoColumns + ` FROM photos
		WHERE content_hash != '' OR structural_fp != ''
		ORDER BY path
	`)
}

// SearchFilter narrows a catalog query. Zero values mean "any".
type SearchFilter struct {
	Camera  string // substring match
	Year    int    // capture year
	MinSize int64  // bytes
	Limit   int    // 0 = unlimited
}

// SearchPhotos returns records matching the filter, ordered by path.
func (s *Storage) SearchPhotos(filter SearchFilter) ([]*models.PhotoRecord, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE 1=1`
	var args []any

	if filter.Camera != "" {
		query += ` AND camera LIKE ?`
		args = append(args, "%"+filter.Camera+"%")
	}
	if filter.Year > 0 {
		query += ` AND taken_at >= ? AND taken_at < ?`
		args = append(args, fmt.Sprintf("%04d-01-01", filter.Year), fmt.Sprintf("%04d-01-01", filter.Year+1))
	}
	if filter.MinSize > 0 {
		query += ` AND size >= ?`
		args = append(args, filter.MinSize)
	}
	query += ` ORDER BY path`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	return s.queryPhotos(query, args...)
}

func (s *Storage) queryPhotos(query string, args ...any) ([]*models.PhotoRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var records []*models.PhotoRecord
	for rows.Next() {
		r := &models.PhotoRecord{}
		var modTime, takenAt string
		var contentHash, structuralFP sql.NullString
		err := rows.Scan(
			&r.ID,
			&r.Path,
			&r.Name,
			&r.Size,
			&modTime,
			&takenAt,
			&r.Camera,
			&r.Width,
			&r.Height,
			&contentHash,
			&structuralFP,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.ContentHash = contentHash.String
		r.StructuralFP = structuralFP.String
		r.ModTime, _ = time.Parse(time.RFC3339Nano, modTime)
		if takenAt != "" {
			r.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// DeletePhoto removes a record from the catalog.
func (s *Storage) DeletePhoto(path string) error {
	_, err := s.db.Exec("DELETE FROM photos WHERE path = ?", path)
	return err
}

// RecordScan appends a scan to the history log.
func (s *Storage) RecordScan(folder string, totalPhotos, totalGroups, totalDuplicates int) error {
	_, err := s.db.Exec(`
		INSERT INTO scan_history (folder, total_photos, total_groups, total_duplicates)
		VALUES (?, ?, ?, ?)
	`, folder, totalPhotos, totalGroups, totalDuplicates)
	return err
}

// CountPhotos returns the number of cataloged records.
func (s *Storage) CountPhotos() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM photos").Scan(&count)
	return count, err
}
