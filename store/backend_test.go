package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/enzfit/store"
)

// exerciseBackend runs the Backend contract against b. Keys live under
// prefix so shared databases can be reused between runs.
func exerciseBackend(t *testing.T, b store.Backend, prefix string) {
	t.Helper()
	ctx := context.Background()
	k := func(s string) string { return prefix + s }

	_, err := b.Get(ctx, k("a/1"))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, b.Put(ctx, k("a/2"), []byte("two")))
	require.NoError(t, b.Put(ctx, k("a/1"), []byte("one")))
	require.NoError(t, b.Put(ctx, k("b/1"), []byte{0, 1, 2, 0xff}))
	require.NoError(t, b.Put(ctx, k("a/1"), []byte("uno")))

	got, err := b.Get(ctx, k("a/1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("uno"), got)
	got, err = b.Get(ctx, k("b/1"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 0xff}, got)

	keys, err := b.List(ctx, k("a/"))
	require.NoError(t, err)
	assert.Equal(t, []string{k("a/1"), k("a/2")}, keys)
	keys, err = b.List(ctx, prefix)
	require.NoError(t, err)
	assert.Equal(t, []string{k("a/1"), k("a/2"), k("b/1")}, keys)

	require.NoError(t, b.Delete(ctx, k("a/1")))
	require.NoError(t, b.Delete(ctx, k("a/1")), "deleting twice is fine")
	_, err = b.Get(ctx, k("a/1"))
	assert.ErrorIs(t, err, store.ErrNotFound)
	keys, err = b.List(ctx, k("a/"))
	require.NoError(t, err)
	assert.Equal(t, []string{k("a/2")}, keys)
}

func TestMemory_Backend(t *testing.T) {
	exerciseBackend(t, store.NewMemory(), "")

	var zero store.Memory
	exerciseBackend(t, &zero, "x/")
}

func TestMemory_CopiesData(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", in))
	in[0] = 'X'
	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)
	out[1] = 'Y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := store.NewMemory()
	assert.ErrorIs(t, m.Put(ctx, "k", nil), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLite_Backend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "enzfit.db")
	b, err := store.OpenSQL(ctx, store.SQLite, path)
	require.NoError(t, err)
	assert.Equal(t, store.SQLite, b.Dialect())
	exerciseBackend(t, b, "")
	require.NoError(t, b.Close())

	// data survives reopening
	b, err = store.OpenSQL(ctx, store.SQLite, path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	got, err := b.Get(ctx, "a/2")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestPostgres_Backend(t *testing.T) {
	dsn := os.Getenv("ENZFIT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ENZFIT_TEST_POSTGRES_DSN not set")
	}
	b, err := store.OpenSQL(context.Background(), store.Postgres, dsn)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	exerciseBackend(t, b, "test-"+uuid.NewString()+"/")
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]store.Dialect{"sqlite": store.SQLite, "SQLite3": store.SQLite, "postgres": store.Postgres, "pgx": store.Postgres} {
		got, err := store.ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := store.ParseDialect("mysql")
	assert.ErrorIs(t, err, store.ErrDialect)

	_, err = store.OpenSQL(context.Background(), store.Dialect(5), "")
	assert.ErrorIs(t, err, store.ErrDialect)
}
