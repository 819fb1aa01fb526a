package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/db"
	"github.com/alexanderramin/opsmap/internal/domain"
)

const mapNodeColumns = `id, map_id, parent_id, name, kind, order_index,
		content, frequency, importance, effort_hours, estimate_min, created_at`

// SQLiteNodeRepo implements NodeRepo on SQLite.
type SQLiteNodeRepo struct {
	db db.DBTX
}

func NewSQLiteNodeRepo(conn db.DBTX) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{db: conn}
}

func (r *SQLiteNodeRepo) ListByMap(ctx context.Context, mapID string) ([]*domain.MapNode, error) {
	query := `SELECT ` + mapNodeColumns + ` FROM map_nodes WHERE map_id = ? ORDER BY order_index, name`
	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("listing map nodes: %w", err)
	}
	defer rows.Close()

	var nodes []*domain.MapNode
	for rows.Next() {
		n, err := scanMapNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating map nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteNodeRepo) ReplaceForMap(ctx context.Context, mapID string, nodes []*domain.MapNode) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM map_nodes WHERE map_id = ?`, mapID); err != nil {
		return fmt.Errorf("clearing map nodes: %w", err)
	}
	query := `INSERT INTO map_nodes (` + mapNodeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, n := range nodes {
		var content, frequency, importance, effort, estimate any
		if n.Task != nil {
			content = n.Task.Content
			frequency = string(n.Task.Frequency)
			importance = n.Task.Importance
			effort = n.Task.EffortHours
			estimate = n.Task.EstimateMin
		}
		_, err := r.db.ExecContext(ctx, query,
			n.ID,
			mapID,
			stringPtrToValue(n.ParentID),
			n.Name,
			string(n.Kind),
			n.OrderIndex,
			content,
			frequency,
			importance,
			effort,
			estimate,
			formatTimestamp(n.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting map node %q: %w", n.Name, err)
		}
	}
	return nil
}

func (r *SQLiteNodeRepo) CountByMap(ctx context.Context, mapID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM map_nodes WHERE map_id = ?`, mapID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting map nodes: %w", err)
	}
	return n, nil
}

func scanMapNode(row rowScanner) (*domain.MapNode, error) {
	var n domain.MapNode
	var parentID, content, frequency sql.NullString
	var importance sql.NullInt64
	var effort, estimate sql.NullFloat64
	var kind, createdAt string

	err := row.Scan(
		&n.ID, &n.MapID, &parentID, &n.Name, &kind, &n.OrderIndex,
		&content, &frequency, &importance, &effort, &estimate, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning map node: %w", err)
	}

	n.ParentID = nullableString(parentID)
	n.Kind = domain.NodeKind(kind)
	if n.Kind == domain.NodeTask {
		// Task columns are written together; missing values fall back to
		// the record defaults.
		rec := domain.DefaultTaskRecord()
		if content.Valid {
			rec.Content = content.String
		}
		if frequency.Valid {
			rec.Frequency = domain.Frequency(frequency.String)
		}
		if importance.Valid {
			rec.Importance = int(importance.Int64)
		}
		if effort.Valid {
			rec.EffortHours = effort.Float64
		}
		if estimate.Valid {
			rec.EstimateMin = estimate.Float64
		}
		n.Task = &rec
	}
	if n.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &n, nil
}
