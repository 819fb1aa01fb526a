package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/opsmap/internal/db"
	"github.com/alexanderramin/opsmap/internal/domain"
)

const mapColumns = `id, name, created_at, updated_at`

// SQLiteMapRepo implements MapRepo on SQLite.
type SQLiteMapRepo struct {
	db db.DBTX
}

func NewSQLiteMapRepo(conn db.DBTX) *SQLiteMapRepo {
	return &SQLiteMapRepo{db: conn}
}

func (r *SQLiteMapRepo) Create(ctx context.Context, m *domain.OrgMap) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO org_maps (`+mapColumns+`) VALUES (?, ?, ?, ?)`,
		m.ID, m.Name, formatTimestamp(m.CreatedAt), formatTimestamp(m.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("map %q: %w", m.Name, ErrDuplicateName)
	}
	if err != nil {
		return fmt.Errorf("inserting map: %w", err)
	}
	return nil
}

func (r *SQLiteMapRepo) GetByID(ctx context.Context, id string) (*domain.OrgMap, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mapColumns+` FROM org_maps WHERE id = ?`, id)
	m, err := scanMap(row)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", id, err)
	}
	return m, nil
}

func (r *SQLiteMapRepo) GetByName(ctx context.Context, name string) (*domain.OrgMap, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mapColumns+` FROM org_maps WHERE name = ?`, name)
	m, err := scanMap(row)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", name, err)
	}
	return m, nil
}

func (r *SQLiteMapRepo) List(ctx context.Context) ([]*domain.OrgMap, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mapColumns+` FROM org_maps ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	defer rows.Close()

	var maps []*domain.OrgMap
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maps: %w", err)
	}
	return maps, nil
}

// Touch bumps updated_at.
func (r *SQLiteMapRepo) Touch(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE org_maps SET updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("touching map: %w", err)
	}
	return requireAffected(res, "map")
}

func (r *SQLiteMapRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM org_maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting map: %w", err)
	}
	return requireAffected(res, "map")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMap(row rowScanner) (*domain.OrgMap, error) {
	var m domain.OrgMap
	var createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning map: %w", err)
	}
	var err error
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
