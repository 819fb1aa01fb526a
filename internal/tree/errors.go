package tree

import (
	"errors"

	"github.com/alexanderramin/opsmap/internal/domain"
)

var (
	// ErrNotFound indicates a path that does not resolve to a node.
	ErrNotFound = errors.New("node not found")

	// ErrNotBranch indicates an insert under a task node.
	ErrNotBranch = errors.New("parent is a task, not a department")

	// ErrNotTask indicates a task read on a branch node.
	ErrNotTask = errors.New("node is a department, not a task")

	// ErrAlreadyExists indicates a sibling with the same name.
	ErrAlreadyExists = errors.New("node already exists")

	// ErrHasChildren indicates a task record saved onto a department that
	// still has children.
	ErrHasChildren = errors.New("department has children")

	// ErrRootPath indicates an operation that needs a non-root path.
	ErrRootPath = errors.New("operation not allowed on the root")

	// ErrInvalidName is re-exported so callers can match on one package.
	ErrInvalidName = domain.ErrInvalidName
)
