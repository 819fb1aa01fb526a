package repository

import (
	"context"

	"github.com/alexanderramin/opsmap/internal/domain"
)

type MapRepo interface {
	Create(ctx context.Context, m *domain.OrgMap) error
	GetByID(ctx context.Context, id string) (*domain.OrgMap, error)
	GetByName(ctx context.Context, name string) (*domain.OrgMap, error)
	List(ctx context.Context) ([]*domain.OrgMap, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type NodeRepo interface {
	// ListByMap returns every node of a map ordered by order_index. Callers
	// group rows by parent_id.
	ListByMap(ctx context.Context, mapID string) ([]*domain.MapNode, error)
	// ReplaceForMap swaps the map's full node set for nodes. Parents must
	// precede their children in nodes so foreign keys resolve.
	ReplaceForMap(ctx context.Context, mapID string, nodes []*domain.MapNode) error
	CountByMap(ctx context.Context, mapID string) (int, error)
}
