package service

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
)

var (
	// ErrInvalidTask wraps the validation problems of a task record.
	ErrInvalidTask = errors.New("invalid task record")
	// ErrMapNotEmpty is returned by Import when the target map already
	// holds nodes and replace was not requested.
	ErrMapNotEmpty = errors.New("map is not empty")
	// ErrCorruptMap is returned when stored rows do not form a tree.
	ErrCorruptMap = errors.New("stored map is corrupt")
)

type MapService interface {
	// Create makes a new map, optionally holding the seed hierarchy.
	Create(ctx context.Context, name string, seed bool) (*domain.OrgMap, error)
	List(ctx context.Context) ([]*domain.OrgMap, error)
	Get(ctx context.Context, name string) (*domain.OrgMap, error)
	Delete(ctx context.Context, name string) error
}

// TreeService edits the tree of a named map. Each call loads the map into a
// private tree.Store and, for mutations, writes it back in one transaction.
type TreeService interface {
	Load(ctx context.Context, mapName string) (*tree.Store, error)
	AddChild(ctx context.Context, mapName string, parent domain.Path, child *tree.Node, overwrite bool) error
	Delete(ctx context.Context, mapName string, path domain.Path) error
	Rename(ctx context.Context, mapName string, path domain.Path, newName string) error
	SaveTask(ctx context.Context, mapName string, path domain.Path, rec domain.TaskRecord) error
	Export(ctx context.Context, mapName string, w io.Writer) error
	Import(ctx context.Context, mapName string, r io.Reader, replace bool) (*ImportResult, error)
}

type ImportResult struct {
	Map         *domain.OrgMap
	BranchCount int
	TaskCount   int
	// Created is true when the map did not exist before the import.
	Created  bool
	Replaced bool
}
