package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/opsmap/internal/db"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/repository"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/alexanderramin/opsmap/internal/treefile"
	"github.com/google/uuid"
)

type treeService struct {
	maps     repository.MapRepo
	nodes    repository.NodeRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTreeService(
	maps repository.MapRepo,
	nodes repository.NodeRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TreeService {
	return &treeService{
		maps:     maps,
		nodes:    nodes,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *treeService) Load(ctx context.Context, mapName string) (*tree.Store, error) {
	m, err := s.maps.GetByName(ctx, mapName)
	if err != nil {
		return nil, err
	}
	rows, err := s.nodes.ListByMap(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return buildTree(rows)
}

func (s *treeService) AddChild(ctx context.Context, mapName string, parent domain.Path, child *tree.Node, overwrite bool) error {
	fields := map[string]any{"parent": parent.String(), "overwrite": overwrite}
	if child != nil {
		fields["name"] = child.Name()
		fields["task"] = child.IsTask()
	}
	return observe(ctx, s.observer, "add-child", mapName, fields, func() error {
		if child != nil {
			if rec, ok := child.Record(); ok {
				if err := validateRecord(rec); err != nil {
					return err
				}
			}
		}
		var opts []tree.AddOption
		if overwrite {
			opts = append(opts, tree.WithOverwrite())
		}
		return s.mutate(ctx, mapName, func(store *tree.Store) error {
			return store.AddChild(parent, child, opts...)
		})
	})
}

func (s *treeService) Delete(ctx context.Context, mapName string, path domain.Path) error {
	fields := map[string]any{"path": path.String()}
	return observe(ctx, s.observer, "delete-node", mapName, fields, func() error {
		return s.mutate(ctx, mapName, func(store *tree.Store) error {
			before := store.Len()
			if err := store.DeleteSubtree(path); err != nil {
				return err
			}
			fields["removed"] = before - store.Len()
			return nil
		})
	})
}

func (s *treeService) Rename(ctx context.Context, mapName string, path domain.Path, newName string) error {
	fields := map[string]any{"path": path.String(), "new_name": newName}
	return observe(ctx, s.observer, "rename-node", mapName, fields, func() error {
		return s.mutate(ctx, mapName, func(store *tree.Store) error {
			return store.Rename(path, newName)
		})
	})
}

func (s *treeService) SaveTask(ctx context.Context, mapName string, path domain.Path, rec domain.TaskRecord) error {
	fields := map[string]any{"path": path.String()}
	return observe(ctx, s.observer, "save-task", mapName, fields, func() error {
		if err := validateRecord(rec); err != nil {
			return err
		}
		return s.mutate(ctx, mapName, func(store *tree.Store) error {
			return store.SetTask(path, rec)
		})
	})
}

func (s *treeService) Export(ctx context.Context, mapName string, w io.Writer) error {
	return observe(ctx, s.observer, "export-map", mapName, nil, func() error {
		store, err := s.Load(ctx, mapName)
		if err != nil {
			return err
		}
		return treefile.Export(w, store)
	})
}

func (s *treeService) Import(ctx context.Context, mapName string, r io.Reader, replace bool) (result *ImportResult, err error) {
	fields := map[string]any{"replace": replace}
	err = observe(ctx, s.observer, "import-map", mapName, fields, func() error {
		// Parse before touching the database so a bad file leaves the map as is.
		imported, parseErr := treefile.Import(r)
		if parseErr != nil {
			return parseErr
		}
		result = &ImportResult{}
		result.BranchCount, result.TaskCount = countKinds(imported)
		fields["branch_count"] = result.BranchCount
		fields["task_count"] = result.TaskCount

		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			maps := repository.NewSQLiteMapRepo(tx)
			nodes := repository.NewSQLiteNodeRepo(tx)
			now := time.Now().UTC()

			m, err := maps.GetByName(ctx, mapName)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				m = &domain.OrgMap{ID: uuid.New().String(), Name: mapName, CreatedAt: now, UpdatedAt: now}
				if err := m.ValidateName(); err != nil {
					return err
				}
				if err := maps.Create(ctx, m); err != nil {
					return err
				}
				result.Created = true
			case err != nil:
				return err
			default:
				count, err := nodes.CountByMap(ctx, m.ID)
				if err != nil {
					return err
				}
				if count > 0 && !replace {
					return fmt.Errorf("map %q holds %d nodes: %w", mapName, count, ErrMapNotEmpty)
				}
				result.Replaced = count > 0
			}
			result.Map = m

			if err := nodes.ReplaceForMap(ctx, m.ID, flattenTree(imported, m.ID, now)); err != nil {
				return err
			}
			return maps.Touch(ctx, m.ID)
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mutate applies fn to the map's tree inside one transaction. The rows are
// rewritten only when fn changed the tree. Repositories are built from the
// transaction; the service's own repositories would block on the single
// in-memory connection.
func (s *treeService) mutate(ctx context.Context, mapName string, fn func(store *tree.Store) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		maps := repository.NewSQLiteMapRepo(tx)
		nodes := repository.NewSQLiteNodeRepo(tx)

		m, err := maps.GetByName(ctx, mapName)
		if err != nil {
			return err
		}
		rows, err := nodes.ListByMap(ctx, m.ID)
		if err != nil {
			return err
		}
		store, err := buildTree(rows)
		if err != nil {
			return err
		}

		before := store.Clone()
		if err := fn(store); err != nil {
			return err
		}
		if store.Equal(before) {
			return nil
		}
		if err := nodes.ReplaceForMap(ctx, m.ID, flattenTree(store, m.ID, time.Now().UTC())); err != nil {
			return err
		}
		return maps.Touch(ctx, m.ID)
	})
}
