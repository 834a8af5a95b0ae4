// Package store keeps the results of earlier evaluations in a SQLite
// database so that repeated runs of the same program skip evaluation.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// schemaVersion is stored in PRAGMA user_version. Databases written with
// another version are rejected.
const schemaVersion = 1

const schema = `CREATE TABLE IF NOT EXISTS results (
	source    TEXT    NOT NULL,
	entry     TEXT    NOT NULL,
	args      TEXT    NOT NULL,
	value     INTEGER NOT NULL,
	calls     INTEGER NOT NULL,
	max_depth INTEGER NOT NULL,
	created   INTEGER NOT NULL,
	PRIMARY KEY (source, entry, args)
)`

var ErrSchemaVersion = errors.New("unsupported result store version")

// Key identifies one evaluation. Source is the full program text; only its
// digest is stored.
type Key struct {
	Source string
	Entry  string
	Args   []int64
}

// Record is a stored successful evaluation.
type Record struct {
	Value    int64
	Calls    int
	MaxDepth int
	Created  time.Time
}

// Store is a result store backed by a SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening result store %s: %w", path, err)
	}
	// A single connection serializes writers within the process.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening result store %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	switch version {
	case 0:
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			return err
		}
		_, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
		return err
	case schemaVersion:
		return nil
	}
	return fmt.Errorf("%w %d (want %d)", ErrSchemaVersion, version, schemaVersion)
}

// Get returns the record stored for key. The boolean is false when there
// is none.
func (s *Store) Get(ctx context.Context, key Key) (Record, bool, error) {
	const stmt = `SELECT value, calls, max_depth, created
				  FROM results
				  WHERE source=? AND entry=? AND args=?`

	var rec Record
	var created int64
	row := s.db.QueryRowContext(ctx, stmt, Digest(key.Source), key.Entry, encodeArgs(key.Args))
	if err := row.Scan(&rec.Value, &rec.Calls, &rec.MaxDepth, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	rec.Created = time.Unix(0, created).UTC()
	return rec, true, nil
}

// Put stores rec under key, replacing any earlier record. A zero Created
// is set to the current time.
func (s *Store) Put(ctx context.Context, key Key, rec Record) error {
	const stmt = `INSERT INTO results (source, entry, args, value, calls, max_depth, created)
				  VALUES (?, ?, ?, ?, ?, ?, ?)
				  ON CONFLICT (source, entry, args) DO UPDATE SET
					value=excluded.value,
					calls=excluded.calls,
					max_depth=excluded.max_depth,
					created=excluded.created`
	if rec.Created.IsZero() {
		rec.Created = s.now()
	}
	_, err := s.db.ExecContext(ctx, stmt,
		Digest(key.Source), key.Entry, encodeArgs(key.Args),
		rec.Value, rec.Calls, rec.MaxDepth, rec.Created.UnixNano())
	return err
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&n)
	return n, err
}

// Prune deletes records created before t and returns how many were removed.
func (s *Store) Prune(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE created < ?", t.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Digest returns the hex SHA-256 of source.
func Digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func encodeArgs(args []int64) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.FormatInt(a, 10)
	}
	return strings.Join(parts, ",")
}
