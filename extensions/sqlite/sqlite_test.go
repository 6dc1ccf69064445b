package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/connect"
	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/extensions/sqlite"
)

func TestDispatcherGetSharesHandles(t *testing.T) {
	d := sqlite.NewDispatcher(t.TempDir())
	defer d.Close()

	db, err := d.Get("notes")
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO notes (body) VALUES (?)`, "remember this")
	require.NoError(t, err)

	again, err := d.Get("notes")
	require.NoError(t, err)
	assert.Same(t, db, again)

	var body string
	require.NoError(t, again.Get(&body, `SELECT body FROM notes WHERE id = 1`))
	assert.Equal(t, "remember this", body)
}

func TestDispatcherSeparatesDatabases(t *testing.T) {
	d := sqlite.NewDispatcher(t.TempDir())
	defer d.Close()

	a, err := d.Get("a")
	require.NoError(t, err)
	b, err := d.Get("b")
	require.NoError(t, err)
	require.NotSame(t, a, b)

	_, err = a.Exec(`CREATE TABLE only_in_a (id INTEGER)`)
	require.NoError(t, err)

	var n int
	err = b.Get(&n, `SELECT COUNT(*) FROM only_in_a`)
	assert.Error(t, err)
}

func TestDatabasesExtractor(t *testing.T) {
	d := sqlite.NewDispatcher(t.TempDir())
	defer d.Close()

	bc := fluxbot.New(connect.Config{}).WithState(d).Build().Context()
	ev := &event.Event{Type: event.PostMessage}

	var dbs sqlite.Databases
	require.True(t, dbs.Extract(context.Background(), bc, ev))
	assert.Same(t, d, dbs.Dispatcher)

	bare := fluxbot.New(connect.Config{}).Build().Context()
	var miss sqlite.Databases
	assert.False(t, miss.Extract(context.Background(), bare, ev))
}
