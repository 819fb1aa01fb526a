package domain

import (
	"fmt"
	"regexp"
	"time"
)

var mapNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// OrgMap is a named, independently stored organization tree.
type OrgMap struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateName checks that the map name is usable as a CLI argument and
// environment value: 1-64 characters of letters, digits, '_', '.', '-',
// starting with a letter or digit.
func (m *OrgMap) ValidateName() error {
	if m.Name == "" {
		return fmt.Errorf("map name is required")
	}
	if !mapNamePattern.MatchString(m.Name) {
		return fmt.Errorf("map name %q must be 1-64 letters, digits, '_', '.' or '-' (e.g. sales-2025)", m.Name)
	}
	return nil
}

// MapNode is the flat, persisted form of one tree node.
type MapNode struct {
	ID         string
	MapID      string
	ParentID   *string
	Name       string
	Kind       NodeKind
	OrderIndex int
	Task       *TaskRecord // nil for branches
	CreatedAt  time.Time
}
