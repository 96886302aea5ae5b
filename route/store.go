package route

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang/glog"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// ErrNotFound is returned when a named route is not in a Store.
var ErrNotFound = errors.New("route: not found")

const schema = `CREATE TABLE IF NOT EXISTS route_points (
	name        TEXT    NOT NULL,
	idx         INTEGER NOT NULL,
	distance_km REAL    NOT NULL,
	speed_kmph  REAL    NOT NULL,
	PRIMARY KEY (name, idx)
)`

// Store keeps named routes in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens the SQLite database at dsn, creating the route table if
// needed. For file-based databases, pass a path like "./routes.sqlite". For
// an in-memory database, pass ":memory:".
func OpenStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore creates a Store on top of an open database, creating the route
// table if needed.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("route: db is nil")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores r under name, replacing any route already saved there.
func (s *Store) Save(ctx context.Context, name string, r *Route) error {
	if name == "" {
		return fmt.Errorf("route: Save called with empty name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM route_points WHERE name = ?`, name); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO route_points
		(name, idx, distance_km, speed_kmph) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range r.DistanceKm {
		_, err := stmt.ExecContext(ctx, name, i, r.DistanceKm[i], r.SpeedKmph[i])
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	glog.V(1).Infof("Saved route '%s' with %d samples.", name, len(r.DistanceKm))
	return nil
}

// Load returns the route saved under name. An error wrapping ErrNotFound is
// returned if there is no such route.
func (s *Store) Load(ctx context.Context, name string) (*Route, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT distance_km, speed_kmph
		FROM route_points WHERE name = ? ORDER BY idx`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var xs, vs []float64
	for rows.Next() {
		var x, v float64
		if err := rows.Scan(&x, &v); err != nil {
			return nil, err
		}
		xs, vs = append(xs, x), append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return New(xs, vs)
}

// Names returns the names of all saved routes in alphabetical order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM route_points ORDER BY name`)
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

// Delete removes the route saved under name. An error wrapping ErrNotFound
// is returned if there is no such route.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM route_points WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return nil
}
