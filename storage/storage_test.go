package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservat/storefront-go/internal/types"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestFileRoundTripAndCorruptionTolerance(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	f := NewFile(path)

	require.NoError(t, f.Set(ctx, "k", "v"))

	// A second instance over the same path sees the value.
	v, ok, err := NewFile(path).Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileMissingReadsAsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent.json"))
	_, ok, err := f.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(NewMemory())

	require.NoError(t, s.Save(ctx, "tok", time.Now().Add(time.Hour)))
	tok, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", tok)

	s.Clear(ctx)
	_, ok = s.Load(ctx)
	assert.False(t, ok)
	s.Clear(ctx) // idempotent
}

func TestTokenStoreExpiredReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(NewMemory())

	require.NoError(t, s.Save(ctx, "tok", time.Now().Add(-time.Minute)))
	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

func TestTokenStoreCorruptRecordReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	port := NewMemory()
	require.NoError(t, port.Set(ctx, "access_token", "{{nope"))

	_, ok := NewTokenStore(port).Load(ctx)
	assert.False(t, ok)

	_, present, _ := port.Get(ctx, "access_token")
	assert.False(t, present, "corrupt record must be deleted")
}

func TestCartStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewCartStore(NewMemory(), zerolog.Nop())

	items := []types.CartItem{
		{
			Service:  types.Service{ID: "s1", Name: "Hotel", Price: 100},
			Quantity: 2,
			Reservation: &types.Reservation{
				CheckIn: "2026-09-01", CheckOut: "2026-09-05",
			},
		},
		{Service: types.Service{ID: "s2", Name: "Tour", Price: 40}, Quantity: 1},
	}
	s.Save(ctx, items)

	got := s.Load(ctx)
	require.Equal(t, items, got, "reloaded cart must reconstruct identical line items")
}

func TestCartStoreMissingLoadsEmpty(t *testing.T) {
	s := NewCartStore(NewMemory(), zerolog.Nop())
	assert.Empty(t, s.Load(context.Background()))
}

func TestCartStoreCorruptLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	port := NewMemory()
	require.NoError(t, port.Set(ctx, "reservat_cart", "not json at all"))

	s := NewCartStore(port, zerolog.Nop())
	assert.Empty(t, s.Load(ctx))
}
