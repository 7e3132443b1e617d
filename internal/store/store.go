// Package store keeps a history of parsed statements in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no statement has the requested ID.
var ErrNotFound = errors.New("statement not found")

// DefaultListLimit caps List when no positive limit is given.
const DefaultListLimit = 50

// Store persists statement records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rec under a new ID and returns the stored record.
func (s *Store) Save(ctx context.Context, rec models.StatementRecord) (models.StatementRecord, error) {
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return models.StatementRecord{}, fmt.Errorf("encoding fields: %w", err)
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO statements (id, source, issuer, parser, fields, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Issuer, rec.Parser, string(fields), rec.Summary, rec.CreatedAt)
	if err != nil {
		return models.StatementRecord{}, fmt.Errorf("inserting statement: %w", err)
	}
	return rec, nil
}

// Get returns the statement with the given ID.
func (s *Store) Get(ctx context.Context, id string) (models.StatementRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, issuer, parser, fields, summary, created_at
		 FROM statements WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatementRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns up to limit statements, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]models.StatementRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, issuer, parser, fields, summary, created_at
		 FROM statements ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}
	defer rows.Close()

	records := []models.StatementRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// AttachSummary stores generated insights on an existing statement.
func (s *Store) AttachSummary(ctx context.Context, id, summary string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE statements SET summary = ? WHERE id = ?`, summary, id)
	if err != nil {
		return fmt.Errorf("updating summary: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating summary: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (models.StatementRecord, error) {
	var (
		rec    models.StatementRecord
		fields string
	)
	if err := sc.Scan(&rec.ID, &rec.Source, &rec.Issuer, &rec.Parser, &fields, &rec.Summary, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning statement: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
		return rec, fmt.Errorf("decoding fields of %s: %w", rec.ID, err)
	}
	return rec, nil
}
