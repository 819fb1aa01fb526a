package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNodeRepo(t *testing.T) (*SQLiteNodeRepo, *domain.OrgMap) {
	t.Helper()
	database := testutil.NewTestDB(t)
	m := testutil.NewTestMap("")
	require.NoError(t, NewSQLiteMapRepo(database).Create(context.Background(), m))
	return NewSQLiteNodeRepo(database), m
}

func newRow(mapID string, parent *domain.MapNode, name string, order int, task *domain.TaskRecord) *domain.MapNode {
	n := &domain.MapNode{
		ID:         uuid.New().String(),
		MapID:      mapID,
		Name:       name,
		Kind:       domain.NodeBranch,
		OrderIndex: order,
		Task:       task,
		CreatedAt:  time.Now().UTC(),
	}
	if parent != nil {
		n.ParentID = &parent.ID
	}
	if task != nil {
		n.Kind = domain.NodeTask
	}
	return n
}

func TestNodeRepo_ReplaceAndList(t *testing.T) {
	repo, m := setupNodeRepo(t)
	ctx := context.Background()

	rec := testutil.NewTestTask(testutil.WithContent("Bill"), testutil.WithImportance(5), testutil.WithEffort(1.5), testutil.WithEstimate(12.5))
	sales := newRow(m.ID, nil, "Sales", 0, nil)
	invoicing := newRow(m.ID, sales, "Invoicing", 0, &rec)
	support := newRow(m.ID, nil, "Support", 1, nil)
	require.NoError(t, repo.ReplaceForMap(ctx, m.ID, []*domain.MapNode{sales, invoicing, support}))

	rows, err := repo.ListByMap(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := map[string]*domain.MapNode{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Nil(t, byName["Sales"].ParentID)
	assert.Nil(t, byName["Sales"].Task)
	require.NotNil(t, byName["Invoicing"].ParentID)
	assert.Equal(t, sales.ID, *byName["Invoicing"].ParentID)
	require.NotNil(t, byName["Invoicing"].Task)
	assert.Equal(t, rec, *byName["Invoicing"].Task)
	assert.Equal(t, 1, byName["Support"].OrderIndex)

	count, err := repo.CountByMap(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNodeRepo_ReplaceDropsOldRows(t *testing.T) {
	repo, m := setupNodeRepo(t)
	ctx := context.Background()

	old := newRow(m.ID, nil, "Old", 0, nil)
	require.NoError(t, repo.ReplaceForMap(ctx, m.ID, []*domain.MapNode{old}))
	require.NoError(t, repo.ReplaceForMap(ctx, m.ID, []*domain.MapNode{newRow(m.ID, nil, "New", 0, nil)}))

	rows, err := repo.ListByMap(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New", rows[0].Name)
}

func TestNodeRepo_ReplaceRejectsDuplicateSiblings(t *testing.T) {
	repo, m := setupNodeRepo(t)
	err := repo.ReplaceForMap(context.Background(), m.ID, []*domain.MapNode{
		newRow(m.ID, nil, "Sales", 0, nil),
		newRow(m.ID, nil, "Sales", 1, nil),
	})
	assert.Error(t, err)
}

func TestNodeRepo_MapsAreIsolated(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	maps := NewSQLiteMapRepo(database)
	nodes := NewSQLiteNodeRepo(database)

	a, b := testutil.NewTestMap("a"), testutil.NewTestMap("b")
	require.NoError(t, maps.Create(ctx, a))
	require.NoError(t, maps.Create(ctx, b))
	require.NoError(t, nodes.ReplaceForMap(ctx, a.ID, []*domain.MapNode{newRow(a.ID, nil, "Sales", 0, nil)}))
	require.NoError(t, nodes.ReplaceForMap(ctx, b.ID, []*domain.MapNode{newRow(b.ID, nil, "Sales", 0, nil)}))

	rows, err := nodes.ListByMap(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, maps.Delete(ctx, a.ID))
	count, err := nodes.CountByMap(ctx, a.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = nodes.CountByMap(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
