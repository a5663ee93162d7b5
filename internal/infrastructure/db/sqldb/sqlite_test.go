package sqldb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kapurocks/directory/internal/infrastructure/store"
)

func openSQLite(t *testing.T) *KV {
	t.Helper()
	db, err := Open(context.Background(), Config{Dialect: DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKV(db, DialectSQLite)
}

func TestSQLite_SaveThenLoad(t *testing.T) {
	kv := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, "users", []byte(`[{"id":1}]`)))

	v, err := kv.Load(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, string(v))
}

func TestSQLite_SaveOverwrites(t *testing.T) {
	kv := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, "adminMode", []byte("false")))
	require.NoError(t, kv.Save(ctx, "adminMode", []byte("true")))

	v, err := kv.Load(ctx, "adminMode")
	require.NoError(t, err)
	require.Equal(t, "true", string(v))
}

func TestSQLite_LoadMissing(t *testing.T) {
	kv := openSQLite(t)

	_, err := kv.Load(context.Background(), "absent")
	require.True(t, errors.Is(err, store.ErrKeyNotFound))
}

func TestSQLite_MigrateIsIdempotent(t *testing.T) {
	kv := openSQLite(t)

	require.NoError(t, Migrate(context.Background(), kv.db, DialectSQLite))
	require.NoError(t, kv.Ping(context.Background()))
}

func TestSQLite_BehindStore(t *testing.T) {
	s := store.New(openSQLite(t))
	ctx := context.Background()

	type item struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, s.Write(ctx, store.KeyMeetings, []item{{ID: 1}, {ID: 2}}))

	got, err := store.Read[item](ctx, s, store.KeyMeetings)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), Config{Dialect: "oracle", DSN: "x"})
	require.Error(t, err)
}
