// Package snapshot persists resolved hierarchies into a SQLite file so
// tooling can compare the type universe across builds and spot drift:
// types appearing, disappearing, or changing their ancestor chains.
package snapshot

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/config"
)

// Record is one type's row in a snapshot.
type Record struct {
	Name      string
	Digest    string   // hex digest of the type key
	Rank      int
	Ancestors []string // ancestor type names, most derived first
}

// Change is one difference between two snapshots.
type Change struct {
	Kind   string // config.ChangeAdded, ChangeRemoved or ChangeChain
	Name   string
	Detail string
}

// Store wraps the snapshot database.
type Store struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS types (
	digest TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	rank INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS ancestors (
	type_digest TEXT NOT NULL,
	pos INTEGER NOT NULL,
	ancestor TEXT NOT NULL,
	PRIMARY KEY (type_digest, pos)
);
`

// Open opens or creates the snapshot database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if _, err := conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)",
		config.SnapshotSchemaVersion,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("writing schema version: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Write replaces the stored snapshot with the given records.
func (s *Store) Write(records []Record) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ancestors"); err != nil {
		return fmt.Errorf("clearing ancestors: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM types"); err != nil {
		return fmt.Errorf("clearing types: %w", err)
	}

	for _, r := range records {
		if _, err := tx.Exec(
			"INSERT INTO types (digest, name, rank) VALUES (?, ?, ?)",
			r.Digest, r.Name, r.Rank,
		); err != nil {
			return fmt.Errorf("inserting type %s: %w", r.Name, err)
		}
		for pos, ancestor := range r.Ancestors {
			if _, err := tx.Exec(
				"INSERT INTO ancestors (type_digest, pos, ancestor) VALUES (?, ?, ?)",
				r.Digest, pos, ancestor,
			); err != nil {
				return fmt.Errorf("inserting ancestor %s of %s: %w", ancestor, r.Name, err)
			}
		}
	}
	return tx.Commit()
}

// Read returns the stored snapshot, sorted by type name.
func (s *Store) Read() ([]Record, error) {
	rows, err := s.conn.Query("SELECT digest, name, rank FROM types ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("reading types: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Digest, &r.Name, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning type: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading types: %w", err)
	}

	for i := range records {
		chain, err := s.readChain(records[i].Digest)
		if err != nil {
			return nil, err
		}
		records[i].Ancestors = chain
	}
	return records, nil
}

func (s *Store) readChain(digest string) ([]string, error) {
	rows, err := s.conn.Query(
		"SELECT ancestor FROM ancestors WHERE type_digest = ? ORDER BY pos",
		digest,
	)
	if err != nil {
		return nil, fmt.Errorf("reading ancestors: %w", err)
	}
	defer rows.Close()

	var chain []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning ancestor: %w", err)
		}
		chain = append(chain, a)
	}
	return chain, rows.Err()
}

// FromUniverse builds snapshot records for every descriptor in the
// universe, sorted by name.
func FromUniverse(u *ancestry.Universe) []Record {
	descs := u.Descriptors()
	records := make([]Record, 0, len(descs))
	for _, d := range descs {
		digest := d.Key.Digest()
		r := Record{
			Name:   d.Name(),
			Digest: hex.EncodeToString(digest[:]),
			Rank:   d.Rank,
		}
		for _, e := range d.Refs {
			r.Ancestors = append(r.Ancestors, e.Key.Name())
		}
		records = append(records, r)
	}
	return records
}

// Diff compares two snapshots and reports added and removed types and
// chain changes, in old-then-new name order.
func Diff(old, new []Record) []Change {
	oldByName := make(map[string]Record, len(old))
	for _, r := range old {
		oldByName[r.Name] = r
	}
	newByName := make(map[string]Record, len(new))
	for _, r := range new {
		newByName[r.Name] = r
	}

	var changes []Change
	for _, r := range old {
		if _, ok := newByName[r.Name]; !ok {
			changes = append(changes, Change{Kind: config.ChangeRemoved, Name: r.Name})
		}
	}
	for _, r := range new {
		prev, ok := oldByName[r.Name]
		if !ok {
			changes = append(changes, Change{Kind: config.ChangeAdded, Name: r.Name})
			continue
		}
		if !sameChain(prev.Ancestors, r.Ancestors) {
			changes = append(changes, Change{
				Kind: config.ChangeChain,
				Name: r.Name,
				Detail: fmt.Sprintf("%s -> %s",
					strings.Join(prev.Ancestors, " "),
					strings.Join(r.Ancestors, " ")),
			})
		}
	}
	return changes
}

func sameChain(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
