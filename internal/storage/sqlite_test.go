package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/tradedesk/internal/schema"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	c, v := testCatalog(t)
	s, err := NewSQLiteStore("file::memory:", CatalogSchemas(c), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	got, err := s.List(ctx, Users)
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, s.Append(ctx, Users, []schema.Record{homer()}))
	require.NoError(t, s.Append(ctx, Trades, []schema.Record{trade(1, 123), trade(2, 125.5)}))
	require.NoError(t, s.Append(ctx, Trades, nil))

	users, err := s.List(ctx, Users)
	require.NoError(t, err)
	require.Equal(t, []schema.Record{homer()}, users)

	trades, err := s.List(ctx, Trades)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	require.Equal(t, int64(2), trades[1]["id"])
	require.Equal(t, 125.5, trades[1]["price"])
}

func TestSQLiteStore_UnknownCollection(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.List(context.Background(), "orders")
	require.ErrorIs(t, err, ErrUnknownCollection)
	require.ErrorIs(t, s.Append(context.Background(), "orders", []schema.Record{{}}), ErrUnknownCollection)
}

func TestSQLiteStore_CorruptDocument(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.db.Create(&Document{Collection: string(Trades), Body: `{"id":"x"}`}).Error)

	_, err := s.List(context.Background(), Trades)
	require.Error(t, err)
}
