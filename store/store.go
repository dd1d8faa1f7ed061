// Package store keeps precompiled class maps in SQLite database so that
// styles could be resolved ahead of time and loaded without running
// resolver.
package store

import (
	"fmt"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"fcss/engine"
	"fcss/style"
)

const schema = `
CREATE TABLE IF NOT EXISTS styles (
	name        TEXT PRIMARY KEY,
	definitions INTEGER NOT NULL,
	tokens      TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	styles     TEXT    NOT NULL REFERENCES styles(name) ON DELETE CASCADE,
	def        INTEGER NOT NULL,
	seq        INTEGER NOT NULL,
	key        TEXT    NOT NULL,
	class      TEXT    NOT NULL,
	css        TEXT    NOT NULL,
	rtl_css    TEXT    NOT NULL,
	rtl_prefix TEXT    NOT NULL,
	kind       INTEGER NOT NULL,
	PRIMARY KEY (styles, def, key)
);
`

// Store is a database of compiled styles. Not safe for concurrent use.
type Store struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// Open opens or creates database at path, ":memory:" gives transient one.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if path == ":memory:" {
		flags = append(flags, sqlite.OpenMemory)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil); err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("unable to configure store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close() //nolint:errcheck
		return nil, fmt.Errorf("unable to initialize store %q: %w", path, err)
	}
	return &Store{conn: conn, log: log.Named("store")}, nil
}

// Close closes database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Save replaces compiled maps of named styles. bakedFrom is fingerprint of
// token table maps were baked from, empty for variables mode.
func (s *Store) Save(name string, maps []*style.ClassMap, bakedFrom string) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Execute(s.conn, `DELETE FROM entries WHERE styles = ?`, &sqlitex.ExecOptions{Args: []any{name}}); err != nil {
		return fmt.Errorf("unable to delete entries of %q: %w", name, err)
	}
	if err = sqlitex.Execute(s.conn, `DELETE FROM styles WHERE name = ?`, &sqlitex.ExecOptions{Args: []any{name}}); err != nil {
		return fmt.Errorf("unable to delete styles %q: %w", name, err)
	}
	if err = sqlitex.Execute(s.conn, `INSERT INTO styles (name, definitions, tokens) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{name, len(maps), bakedFrom}}); err != nil {
		return fmt.Errorf("unable to insert styles %q: %w", name, err)
	}

	var count int
	for def, cm := range maps {
		seq := 0
		cm.Each(func(key string, e style.Entry) {
			if err != nil {
				return
			}
			err = sqlitex.Execute(s.conn,
				`INSERT INTO entries (styles, def, seq, key, class, css, rtl_css, rtl_prefix, kind) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{name, def, seq, key, e.ClassName, e.CSS, e.RTLCSS, e.RTLPrefix, int(e.Kind)}})
			seq++
			count++
		})
		if err != nil {
			return fmt.Errorf("unable to insert entries of %q definition %d: %w", name, def, err)
		}
	}
	s.log.Debug("Styles saved", zap.String("name", name), zap.Int("definitions", len(maps)), zap.Int("entries", count), zap.String("tokens", bakedFrom))
	return nil
}

// Load returns compiled maps of named styles indexed by definition, and
// fingerprint of token table they were baked from (empty for variables
// mode). Missing styles result in nil maps and no error.
func (s *Store) Load(name string) ([]*style.ClassMap, string, error) {
	var (
		found     bool
		bakedFrom string
		maps      []*style.ClassMap
	)
	err := sqlitex.Execute(s.conn, `SELECT definitions, tokens FROM styles WHERE name = ?`, &sqlitex.ExecOptions{
		Args: []any{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			maps = make([]*style.ClassMap, stmt.ColumnInt(0))
			bakedFrom = stmt.ColumnText(1)
			return nil
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("unable to query styles %q: %w", name, err)
	}
	if !found {
		return nil, "", nil
	}
	for i := range maps {
		maps[i] = style.NewClassMap()
	}

	err = sqlitex.Execute(s.conn,
		`SELECT def, key, class, css, rtl_css, rtl_prefix, kind FROM entries WHERE styles = ? ORDER BY def, seq`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				def := stmt.ColumnInt(0)
				if def < 0 || def >= len(maps) {
					return fmt.Errorf("entry references definition %d of %d", def, len(maps))
				}
				maps[def].Set(stmt.ColumnText(1), style.Entry{
					ClassName: stmt.ColumnText(2),
					CSS:       stmt.ColumnText(3),
					RTLCSS:    stmt.ColumnText(4),
					RTLPrefix: stmt.ColumnText(5),
					Kind:      style.Kind(stmt.ColumnInt(6)),
				})
				return nil
			},
		})
	if err != nil {
		return nil, "", fmt.Errorf("unable to load entries of %q: %w", name, err)
	}
	return maps, bakedFrom, nil
}

// Names returns names of stored styles.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := sqlitex.Execute(s.conn, `SELECT name FROM styles ORDER BY name`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list styles: %w", err)
	}
	return names, nil
}

// Precompile returns definitions of st with sources wrapped into
// engine.Precompiled when stored maps are available and match definition
// count. Engine falls back to original sources when maps were compiled for
// another token mode or table.
func (s *Store) Precompile(st *engine.Styles) ([]engine.Definition, error) {
	defs := st.Definitions()
	maps, bakedFrom, err := s.Load(st.Name())
	if err != nil {
		return nil, err
	}
	if maps == nil {
		return defs, nil
	}
	if len(maps) != len(defs) {
		s.log.Warn("Stored styles do not match definitions, ignoring",
			zap.String("name", st.Name()), zap.Int("stored", len(maps)), zap.Int("definitions", len(defs)))
		return defs, nil
	}
	for i := range defs {
		defs[i].Source = engine.Precompiled(defs[i].Source, maps[i], bakedFrom)
	}
	return defs, nil
}
