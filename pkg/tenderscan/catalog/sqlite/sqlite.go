package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
)

// sqliteStore implements catalog.Store on a SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite-backed catalog store with
// WAL mode enabled.
func Open(ctx context.Context, path string) (catalog.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist. The managers table
// keeps an autoincrement seq so List can preserve first-insert order;
// synonym and exclusion terms live in one ordered child table.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS managers (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	unit TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS manager_terms (
	manager_seq INTEGER NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('synonym', 'exclusion')),
	pos INTEGER NOT NULL,
	term TEXT NOT NULL,
	PRIMARY KEY (manager_seq, kind, pos),
	FOREIGN KEY (manager_seq) REFERENCES managers(seq) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Upsert inserts or replaces an entry, keyed by ID. An existing entry
// keeps its seq, so catalog iteration order survives edits.
func (s *sqliteStore) Upsert(ctx context.Context, m catalog.Manager) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertTx(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertTx(ctx context.Context, tx *sql.Tx, m catalog.Manager) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO managers (id, name, description, unit, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			unit = excluded.unit,
			active = excluded.active`,
		m.ID, m.Name, m.Description, m.Unit, boolInt(m.Active))
	if err != nil {
		return fmt.Errorf("upsert manager %s: %w", m.ID, err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT seq FROM managers WHERE id = ?", m.ID).Scan(&seq); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM manager_terms WHERE manager_seq = ?", seq); err != nil {
		return err
	}
	if err := insertTerms(ctx, tx, seq, "synonym", m.Synonyms); err != nil {
		return err
	}
	return insertTerms(ctx, tx, seq, "exclusion", m.Exclusions)
}

func insertTerms(ctx context.Context, tx *sql.Tx, seq int64, kind string, terms []string) error {
	for i, term := range terms {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO manager_terms (manager_seq, kind, pos, term) VALUES (?, ?, ?, ?)",
			seq, kind, i, term); err != nil {
			return err
		}
	}
	return nil
}

// Get returns an entry by ID.
func (s *sqliteStore) Get(ctx context.Context, id string) (catalog.Manager, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT seq, id, name, description, unit, active FROM managers WHERE id = ?", id)

	var seq int64
	var m catalog.Manager
	var active int
	if err := row.Scan(&seq, &m.ID, &m.Name, &m.Description, &m.Unit, &active); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Manager{}, false, nil
		}
		return catalog.Manager{}, false, err
	}
	m.Active = active != 0

	if err := s.loadTerms(ctx, seq, &m); err != nil {
		return catalog.Manager{}, false, err
	}
	return m, true, nil
}

// List returns the full catalog in first-insert order.
func (s *sqliteStore) List(ctx context.Context) ([]catalog.Manager, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, id, name, description, unit, active FROM managers ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []catalog.Manager
	var seqs []int64
	for rows.Next() {
		var seq int64
		var m catalog.Manager
		var active int
		if err := rows.Scan(&seq, &m.ID, &m.Name, &m.Description, &m.Unit, &active); err != nil {
			return nil, err
		}
		m.Active = active != 0
		managers = append(managers, m)
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range managers {
		if err := s.loadTerms(ctx, seqs[i], &managers[i]); err != nil {
			return nil, err
		}
	}
	return managers, nil
}

func (s *sqliteStore) loadTerms(ctx context.Context, seq int64, m *catalog.Manager) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, term FROM manager_terms WHERE manager_seq = ? ORDER BY kind, pos", seq)
	if err != nil {
		return err
	}
	defer rows.Close()

	m.Synonyms = []string{}
	m.Exclusions = []string{}
	for rows.Next() {
		var kind, term string
		if err := rows.Scan(&kind, &term); err != nil {
			return err
		}
		switch kind {
		case "synonym":
			m.Synonyms = append(m.Synonyms, term)
		case "exclusion":
			m.Exclusions = append(m.Exclusions, term)
		}
	}
	return rows.Err()
}

// Delete removes an entry. Deleting an unknown ID is a no-op.
func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM managers WHERE id = ?", id)
	return err
}

// ReplaceAll swaps the whole catalog for the given entries in one
// transaction, resetting iteration order to the given slice order.
func (s *sqliteStore) ReplaceAll(ctx context.Context, managers []catalog.Manager) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM manager_terms"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM managers"); err != nil {
		return err
	}
	for _, m := range managers {
		if err := upsertTx(ctx, tx, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
