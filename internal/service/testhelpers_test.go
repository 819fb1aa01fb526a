package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/alexanderramin/opsmap/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type fixture struct {
	maps     MapService
	tree     TreeService
	nodes    *repository.SQLiteNodeRepo
	observer *recordingObserver
}

func setupServices(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	mapRepo := repository.NewSQLiteMapRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	obs := &recordingObserver{}
	return fixture{
		maps:     NewMapService(mapRepo, uow, obs),
		tree:     NewTreeService(mapRepo, nodeRepo, uow, obs),
		nodes:    nodeRepo,
		observer: obs,
	}
}

func (f fixture) createMap(t *testing.T, name string, seed bool) {
	t.Helper()
	_, err := f.maps.Create(context.Background(), name, seed)
	require.NoError(t, err)
}
