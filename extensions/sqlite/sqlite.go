// Package sqlite gives handlers per-name SQLite databases under a
// common directory. Register a Dispatcher as bot state and pull it in
// handlers with the Databases extractor.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/logger"
)

var log = logger.New("sqlite")

// Dispatcher opens and caches one database handle per logical name.
// All databases live as <name>.db files under the dispatcher's
// directory, which is created on first use. Safe for concurrent use.
type Dispatcher struct {
	dir string

	mu  sync.Mutex
	dbs map[string]*sqlx.DB
}

// NewDispatcher returns a dispatcher rooted at dir.
func NewDispatcher(dir string) *Dispatcher {
	return &Dispatcher{dir: dir, dbs: map[string]*sqlx.DB{}}
}

// Get returns the database for name, opening it on first request.
// Subsequent calls with the same name share the handle.
func (d *Dispatcher) Get(name string) (*sqlx.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if db, ok := d.dbs[name]; ok {
		return db, nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite3", filepath.Join(d.dir, name+".db"))
	if err != nil {
		return nil, err
	}
	log.Debug("opened database %s", name)
	d.dbs[name] = db
	return db, nil
}

// Close closes every open handle and reports all failures.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result *multierror.Error
	for name, db := range d.dbs {
		if err := db.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		delete(d.dbs, name)
	}
	return result.ErrorOrNil()
}

// Databases is an extractor resolving the Dispatcher registered as bot
// state. It does not match when no dispatcher was registered.
type Databases struct {
	*Dispatcher
}

// Extract implements fluxbot.Extractor.
func (s *Databases) Extract(_ context.Context, bc *fluxbot.Context, _ *event.Event) bool {
	d, ok := fluxbot.StateOf[*Dispatcher](bc)
	if !ok {
		return false
	}
	s.Dispatcher = d
	return true
}
