// Package sqlstore is a SQLite backed school.Repository.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/school"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS schools (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	name_key     TEXT NOT NULL UNIQUE,
	slug         TEXT NOT NULL,
	short        TEXT NOT NULL,
	color        TEXT NOT NULL,
	country      TEXT NOT NULL,
	logo         TEXT NOT NULL,
	background   TEXT NOT NULL,
	locations    TEXT NOT NULL DEFAULT '[]',
	programs     TEXT NOT NULL DEFAULT '[]',
	galleries    TEXT NOT NULL DEFAULT '[]',
	scholarships TEXT NOT NULL DEFAULT '[]',
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_schools_created_at ON schools(created_at);
`

const selectColumns = `id, name, slug, short, color, country, logo, background,
	locations, programs, galleries, scholarships, created_at`

// Store persists schools in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Debug("Opened school database at %s", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a school.
func (s *Store) Create(ctx context.Context, sc school.School) error {
	cols, err := encodeCollections(sc.FormData)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schools (id, name, name_key, slug, short, color, country, logo, background,
			locations, programs, galleries, scholarships, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, school.NameKey(sc.Name), sc.Slug, sc.Short, sc.Color, sc.Country,
		sc.Logo, sc.Background, cols[0], cols[1], cols[2], cols[3],
		sc.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return school.ErrDuplicateName
		}
		return fmt.Errorf("failed to insert school: %w", err)
	}
	return nil
}

// Get returns the school with id.
func (s *Store) Get(ctx context.Context, id string) (school.School, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM schools WHERE id = ?`, id)
	return scanSchool(row)
}

// FindByName returns the school whose name matches ignoring case.
func (s *Store) FindByName(ctx context.Context, name string) (school.School, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM schools WHERE name_key = ?`, school.NameKey(name))
	return scanSchool(row)
}

// List returns all schools ordered by creation time.
func (s *Store) List(ctx context.Context) ([]school.School, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM schools ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var out []school.School
	for rows.Next() {
		sc, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSchool(row scanner) (school.School, error) {
	var (
		sc                                            school.School
		locations, programs, galleries, scholarships string
		createdAt                                     string
	)
	err := row.Scan(&sc.ID, &sc.Name, &sc.Slug, &sc.Short, &sc.Color, &sc.Country,
		&sc.Logo, &sc.Background, &locations, &programs, &galleries, &scholarships, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return school.School{}, school.ErrNotFound
	}
	if err != nil {
		return school.School{}, fmt.Errorf("failed to scan school: %w", err)
	}

	for _, c := range []struct {
		raw  string
		dest any
	}{
		{locations, &sc.Locations},
		{programs, &sc.Programs},
		{galleries, &sc.Galleries},
		{scholarships, &sc.Scholarships},
	} {
		if err := json.Unmarshal([]byte(c.raw), c.dest); err != nil {
			return school.School{}, fmt.Errorf("failed to decode school %s: %w", sc.ID, err)
		}
	}

	sc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return school.School{}, fmt.Errorf("failed to parse created_at of %s: %w", sc.ID, err)
	}
	return sc, nil
}

func encodeCollections(f school.FormData) ([4]string, error) {
	var out [4]string
	for i, v := range []any{f.Locations, f.Programs, f.Galleries, f.Scholarships} {
		data, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("failed to encode school: %w", err)
		}
		out[i] = string(data)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed: schools.name_key")
}
