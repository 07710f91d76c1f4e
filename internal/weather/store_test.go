package weather

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxAge time.Duration) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "climatology.db"), maxAge)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	clim, err := store.Get(ctx, ParameterGHI, 37.5665, 126.978)
	require.NoError(t, err)
	assert.Nil(t, clim)

	want := &climatology{Values: map[string]float64{"ANN": 3.9, "JAN": 2.1}, Units: "kW-hr/m^2/day"}
	require.NoError(t, store.Put(ctx, ParameterGHI, 37.56651, 126.97801, want))

	got, err := store.Get(ctx, ParameterGHI, 37.5665, 126.978)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := store.Get(ctx, ParameterTemperature, 37.5665, 126.978)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStoreIgnoresAndPrunesStaleEntries(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	clim := &climatology{Values: map[string]float64{"ANN": 4.0}}
	require.NoError(t, store.Put(ctx, ParameterGHI, 35.1, 129.0, clim))
	require.NoError(t, store.Put(ctx, ParameterGHI, 33.5, 126.5, clim))

	_, err := store.db.Exec(`UPDATE climatology SET fetched_at = ? WHERE latitude = ?`,
		time.Now().Add(-2*time.Hour).Unix(), 35.1)
	require.NoError(t, err)

	stale, err := store.Get(ctx, ParameterGHI, 35.1, 129.0)
	require.NoError(t, err)
	assert.Nil(t, stale)

	n, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	fresh, err := store.Get(ctx, ParameterGHI, 33.5, 126.5)
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestStoreReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climatology.db")
	ctx := context.Background()

	first, err := NewStore(path, 0)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, ParameterGHI, 36.0, 127.0, &climatology{Values: map[string]float64{"ANN": 3.5}}))
	require.NoError(t, first.Close())

	second, err := NewStore(path, 0)
	require.NoError(t, err)
	defer second.Close()

	clim, err := second.Get(ctx, ParameterGHI, 36.0, 127.0)
	require.NoError(t, err)
	require.NotNil(t, clim)
	assert.Equal(t, 3.5, clim.Values["ANN"])
}
