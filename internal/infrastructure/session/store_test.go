package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdv/terminal/internal/domain/tenant"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreEmptyLoad(t *testing.T) {
	store := newTestSQLiteStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, state.TenantContext().IsZero())
	assert.Empty(t, state.AccessToken)
}

func TestSQLiteStorePersistsTenantAndToken(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTenant(ctx, "tenant-a", tenant.BusinessKindRestaurant))
	require.NoError(t, store.SetToken(ctx, "tok-1"))

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", state.TenantID)
	assert.Equal(t, tenant.BusinessKindRestaurant, state.BusinessKind)
	assert.Equal(t, "tok-1", state.AccessToken)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SetTenant(ctx, "tenant-a", tenant.BusinessKindGrocery))

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	state, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", state.TenantID)
}

func TestSQLiteStoreClear(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTenant(ctx, "tenant-a", tenant.BusinessKindGrocery))
	require.NoError(t, store.SetToken(ctx, "tok-1"))

	require.NoError(t, store.ClearTenant(ctx))
	require.NoError(t, store.ClearToken(ctx))

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.TenantID)
	assert.Empty(t, state.AccessToken)
}
