package snapshot

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lightsamurai/DSGeneration/model"
)

// Store keeps named model snapshots in a sqlite database, one blob
// per row.
type Store struct {
	db *sql.DB
}

const createStmt = `
	CREATE TABLE IF NOT EXISTS snapshots
	(
	  id   TEXT PRIMARY KEY,
	  name TEXT UNIQUE NOT NULL,
	  rows INTEGER NOT NULL,
	  cols INTEGER NOT NULL,
	  data BLOB NOT NULL
	)`

// OpenStore opens (and if needed initializes) the snapshot database
// at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createStmt); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Put stores m under name, replacing any previous snapshot with that
// name.
func (s *Store) Put(name string, m *model.Model) error {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return err
	}

	id := strings.Replace(uuid.New().String(), "-", "", -1)
	r, c := m.Matrix().Shape()

	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, name, rows, cols, data) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET id = excluded.id, rows = excluded.rows,
		 cols = excluded.cols, data = excluded.data`,
		id, name, r, c, buf.Bytes())
	if err != nil {
		return err
	}

	log.V(1).Infof("stored snapshot %q (%dx%d, %d bytes)", name, r, c, buf.Len())
	return nil
}

// Get loads the snapshot stored under name.
func (s *Store) Get(name string) (*model.Model, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE name = ?`, name).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}
	return Decode(bytes.NewReader(data))
}

// List returns the stored snapshot names in lexical order.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the snapshot stored under name, if any.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
