package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/opsmap/internal/db"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/google/uuid"
)

type mapService struct {
	maps     repository.MapRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewMapService(maps repository.MapRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MapService {
	return &mapService{
		maps:     maps,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *mapService) Create(ctx context.Context, name string, seed bool) (m *domain.OrgMap, err error) {
	fields := map[string]any{"seed": seed}
	err = observe(ctx, s.observer, "create-map", name, fields, func() error {
		now := time.Now().UTC()
		m = &domain.OrgMap{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := m.ValidateName(); err != nil {
			return err
		}
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := repository.NewSQLiteMapRepo(tx).Create(ctx, m); err != nil {
				return err
			}
			if !seed {
				return nil
			}
			rows := flattenTree(tree.Seed(), m.ID, now)
			fields["node_count"] = len(rows)
			if err := repository.NewSQLiteNodeRepo(tx).ReplaceForMap(ctx, m.ID, rows); err != nil {
				return fmt.Errorf("seeding map: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *mapService) List(ctx context.Context) ([]*domain.OrgMap, error) {
	return s.maps.List(ctx)
}

func (s *mapService) Get(ctx context.Context, name string) (*domain.OrgMap, error) {
	return s.maps.GetByName(ctx, name)
}

func (s *mapService) Delete(ctx context.Context, name string) error {
	return observe(ctx, s.observer, "delete-map", name, nil, func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			maps := repository.NewSQLiteMapRepo(tx)
			m, err := maps.GetByName(ctx, name)
			if err != nil {
				return err
			}
			return maps.Delete(ctx, m.ID)
		})
	})
}
