package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/alexanderramin/opsmap/internal/testutil"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapService_CreateEmpty(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	m, err := f.maps.Create(ctx, "ops", false)
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)

	store, err := f.tree.Load(ctx, "ops")
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestMapService_CreateSeeded(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	f.createMap(t, "ops", true)

	store, err := f.tree.Load(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Headquarters",
		"Headquarters/Accounting",
		"Headquarters/Human Resources",
	}, testutil.Paths(store))

	ev := f.observer.last()
	assert.Equal(t, "create-map", ev.Name)
	assert.Equal(t, "ops", ev.Map)
	assert.True(t, ev.Success)
	assert.Equal(t, 3, ev.Fields["node_count"])
}

func TestMapService_CreateRejectsBadName(t *testing.T) {
	f := setupServices(t)
	_, err := f.maps.Create(context.Background(), "has space", false)
	assert.Error(t, err)
	assert.False(t, f.observer.last().Success)

	maps, err := f.maps.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, maps)
}

func TestMapService_CreateDuplicate(t *testing.T) {
	f := setupServices(t)
	f.createMap(t, "ops", true)
	_, err := f.maps.Create(context.Background(), "ops", true)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestMapService_Delete(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	f.createMap(t, "ops", true)

	m, err := f.maps.Get(ctx, "ops")
	require.NoError(t, err)
	require.NoError(t, f.maps.Delete(ctx, "ops"))

	_, err = f.maps.Get(ctx, "ops")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	count, err := f.nodes.CountByMap(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, f.maps.Delete(ctx, "ops"), repository.ErrNotFound)
}

func TestMapService_SessionsAreIsolated(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	f.createMap(t, "a", false)
	f.createMap(t, "b", false)

	require.NoError(t, f.tree.AddChild(ctx, "a", domain.Path{}, tree.Branch("Sales"), false))

	a, err := f.tree.Load(ctx, "a")
	require.NoError(t, err)
	b, err := f.tree.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Len())
	assert.Zero(t, b.Len())
}
