package routecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/japandatascience/timeline-mapping/services/transit/panel"
	"go.uber.org/zap"
)

var (
	// ErrEntryNotFound is returned if no entry is stored under the requested key.
	ErrEntryNotFound = errors.New("cache entry not found")
)

// Entry is a parsed route stored against the fingerprint of the search that produced it.
type Entry struct {
	ID          string
	Fingerprint Fingerprint
	Route       *panel.Route
	CreatedAt   time.Time
}

func (e *Entry) dup() *Entry {
	return &Entry{
		ID:          e.ID,
		Fingerprint: e.Fingerprint,
		Route:       e.Route.Copy(),
		CreatedAt:   e.CreatedAt,
	}
}

// Persister stores cache entries keyed by their fingerprint key.
type Persister interface {
	PutEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, key string) (*Entry, error)
	GetEntries(ctx context.Context) ([]*Entry, error)
	DeleteEntriesBefore(ctx context.Context, before time.Time) (int, error)
}

// InMemoryPersister satisfies the requirements of the 'Persister' interface in memory.
type InMemoryPersister struct {
	entries map[string]*Entry
	lock    sync.Mutex
}

// NewInMemoryPersister creates a new instance of an in-memory persister
func NewInMemoryPersister() *InMemoryPersister {
	return &InMemoryPersister{
		entries: map[string]*Entry{},
	}
}

// PutEntry stores a copy of the entry, replacing any entry with the same key.
func (imp *InMemoryPersister) PutEntry(ctx context.Context, e *Entry) error {
	imp.lock.Lock()
	imp.entries[e.Fingerprint.Key()] = e.dup()
	imp.lock.Unlock()
	return nil
}

// GetEntry returns a copy of the entry stored under the key.
func (imp *InMemoryPersister) GetEntry(ctx context.Context, key string) (*Entry, error) {
	imp.lock.Lock()
	defer imp.lock.Unlock()

	e, ok := imp.entries[key]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e.dup(), nil
}

// GetEntries returns a copy of every stored entry.
func (imp *InMemoryPersister) GetEntries(ctx context.Context) ([]*Entry, error) {
	imp.lock.Lock()
	defer imp.lock.Unlock()

	var ret []*Entry
	for _, e := range imp.entries {
		ret = append(ret, e.dup())
	}
	return ret, nil
}

// DeleteEntriesBefore removes every entry created before the supplied time.
func (imp *InMemoryPersister) DeleteEntriesBefore(ctx context.Context, before time.Time) (int, error) {
	imp.lock.Lock()
	defer imp.lock.Unlock()

	count := 0
	for key, e := range imp.entries {
		if e.CreatedAt.Before(before) {
			delete(imp.entries, key)
			count++
		}
	}
	return count, nil
}

// SQLPersister satisfies the requirements of the 'Persister' interface in a SQL DB
type SQLPersister struct {
	logger *zap.Logger
	db     *sql.DB
}

const (
	setupQuery = `CREATE TABLE IF NOT EXISTS route_cache(
		key TEXT NOT NULL PRIMARY KEY,
		id TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		arrival_bucket TEXT NOT NULL,
		route TEXT NOT NULL,
		created_at INTEGER NOT NULL
		);`
	upsertEntryQuery   = `INSERT OR REPLACE INTO route_cache(key, id, origin, destination, arrival_bucket, route, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectEntryQuery   = `SELECT id, origin, destination, arrival_bucket, route, created_at FROM route_cache WHERE key=?;`
	selectEntriesQuery = `SELECT id, origin, destination, arrival_bucket, route, created_at FROM route_cache;`
	deleteEntriesQuery = `DELETE FROM route_cache WHERE created_at < ?;`
)

// NewSQLPersister creates a new persister backed by a SQL DB.
// The cache table is created if it does not already exist.
func NewSQLPersister(logger *zap.Logger, db *sql.DB) (*SQLPersister, error) {
	_, err := db.Exec(setupQuery)
	if err != nil {
		return nil, err
	}

	return &SQLPersister{
		logger: logger,
		db:     db,
	}, nil
}

// PutEntry saves the entry, replacing any entry with the same key.
func (p *SQLPersister) PutEntry(ctx context.Context, e *Entry) error {
	routeJSON, err := json.Marshal(e.Route)
	if err != nil {
		return err
	}

	stmt, err := p.db.PrepareContext(ctx, upsertEntryQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		e.Fingerprint.Key(),
		e.ID,
		e.Fingerprint.Origin,
		e.Fingerprint.Destination,
		e.Fingerprint.ArrivalBucket,
		string(routeJSON),
		e.CreatedAt.UnixNano(),
	)
	if err != nil {
		p.logger.Info("unable to save cache entry",
			zap.String("entry_id", e.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// GetEntry loads the entry stored under the key.
func (p *SQLPersister) GetEntry(ctx context.Context, key string) (*Entry, error) {
	stmt, err := p.db.PrepareContext(ctx, selectEntryQuery)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	e, err := scanEntry(stmt.QueryRowContext(ctx, key))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	} else if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEntries loads every stored entry.
// Rows that cannot be decoded are logged and skipped.
func (p *SQLPersister) GetEntries(ctx context.Context) ([]*Entry, error) {
	rows, err := p.db.QueryContext(ctx, selectEntriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			p.logger.Info("unable to load cache entry, continuing",
				zap.Error(err),
			)
			continue
		}
		ret = append(ret, e)
	}

	return ret, rows.Err()
}

// DeleteEntriesBefore removes every entry created before the supplied time.
func (p *SQLPersister) DeleteEntriesBefore(ctx context.Context, before time.Time) (int, error) {
	stmt, err := p.db.PrepareContext(ctx, deleteEntriesQuery)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, before.UnixNano())
	if err != nil {
		return 0, err
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var routeJSON string
	var createdAt int64
	e := &Entry{}

	err := row.Scan(
		&e.ID,
		&e.Fingerprint.Origin,
		&e.Fingerprint.Destination,
		&e.Fingerprint.ArrivalBucket,
		&routeJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Route = &panel.Route{}
	if err := json.Unmarshal([]byte(routeJSON), e.Route); err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(0, createdAt)
	return e, nil
}
