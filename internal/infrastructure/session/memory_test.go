package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdv/terminal/internal/domain/tenant"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.TenantContext().IsZero())

	require.NoError(t, store.SetTenant(ctx, "tenant-a", tenant.BusinessKindRestaurant))
	require.NoError(t, store.SetToken(ctx, "tok-1"))

	state, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", state.TenantID)
	assert.Equal(t, tenant.BusinessKindRestaurant, state.BusinessKind)
	assert.Equal(t, "tok-1", state.AccessToken)
}

func TestMemoryStoreClearTenantKeepsToken(t *testing.T) {
	store := NewMemoryStoreWith(State{
		TenantID:     "tenant-a",
		BusinessKind: tenant.BusinessKindGrocery,
		AccessToken:  "tok-1",
	})
	ctx := context.Background()

	require.NoError(t, store.ClearTenant(ctx))

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.TenantID)
	assert.Empty(t, state.BusinessKind)
	assert.Equal(t, "tok-1", state.AccessToken)
}

func TestMemoryStoreClearTokenKeepsTenant(t *testing.T) {
	store := NewMemoryStoreWith(State{TenantID: "tenant-a", AccessToken: "tok-1"})
	ctx := context.Background()

	require.NoError(t, store.ClearToken(ctx))

	state, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", state.TenantID)
	assert.Empty(t, state.AccessToken)
}
