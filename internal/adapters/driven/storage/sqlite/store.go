package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/workmirror/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is the SQLite-backed record store. Each write is an independent
// upsert; WAL mode keeps concurrent detail-phase workers from serialising
// on the file lock.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store under dataDir. If dataDir is empty,
// defaults to ~/.workmirror/data/records.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".workmirror", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Save stores or replaces a record keyed by (kind, id).
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}
	labelsJSON, err := json.Marshal(rec.ScopeLabels)
	if err != nil {
		return fmt.Errorf("marshalling scope labels: %w", err)
	}

	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, kind, fields, origin, scope_labels, classification, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			fields = excluded.fields,
			origin = excluded.origin,
			scope_labels = excluded.scope_labels,
			classification = excluded.classification,
			updated_at = excluded.updated_at
	`, rec.ID, string(rec.Kind), string(fieldsJSON), rec.Origin,
		string(labelsJSON), string(rec.Classification), updatedAt)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	return nil
}

// Get retrieves a record by identity.
func (s *Store) Get(ctx context.Context, ref domain.Reference) (*domain.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, fields, origin, scope_labels, classification, updated_at
		FROM records WHERE kind = ? AND id = ?
	`, string(ref.Kind), ref.ID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return rec, nil
}

// Exists reports whether the identity is already materialised.
func (s *Store) Exists(ctx context.Context, ref domain.Reference) (bool, error) {
	var one int
	row := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM records WHERE kind = ? AND id = ?", string(ref.Kind), ref.ID)
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking record: %w", err)
	}
	return true, nil
}

// Delete removes a record by identity. Absent identities are not an error.
func (s *Store) Delete(ctx context.Context, ref domain.Reference) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE kind = ? AND id = ?", string(ref.Kind), ref.ID)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// ListByKind returns all records of one kind.
func (s *Store) ListByKind(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, fields, origin, scope_labels, classification, updated_at
		FROM records WHERE kind = ? ORDER BY id
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListClientProjects returns project records with at least one scope label.
func (s *Store) ListClientProjects(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, fields, origin, scope_labels, classification, updated_at
		FROM records
		WHERE kind = ? AND scope_labels NOT IN ('[]', 'null')
		ORDER BY id
	`, string(domain.KindProject))
	if err != nil {
		return nil, fmt.Errorf("listing client projects: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec            domain.Record
		kind           string
		fieldsJSON     string
		labelsJSON     string
		classification string
	)
	if err := row.Scan(&rec.ID, &kind, &fieldsJSON, &rec.Origin,
		&labelsJSON, &classification, &rec.UpdatedAt); err != nil {
		return nil, err
	}

	rec.Kind = domain.Kind(kind)
	rec.Classification = domain.Classification(classification)
	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	if err := json.Unmarshal([]byte(labelsJSON), &rec.ScopeLabels); err != nil {
		return nil, fmt.Errorf("unmarshalling scope labels: %w", err)
	}
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]domain.Record, error) {
	var out []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}
