package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PathDelimiter separates segments in an encoded path.
const PathDelimiter = "/"

// ErrInvalidName is returned for node names that cannot round-trip through
// the path codec.
var ErrInvalidName = errors.New("invalid node name")

// Path is the ordered list of names from the root to a node. The empty
// path addresses the root.
type Path []string

// EncodePath joins segments into the single string id used by selection
// state, graph node ids and command arguments.
func EncodePath(segments Path) string {
	return strings.Join(segments, PathDelimiter)
}

// DecodePath splits an encoded id back into segments. The empty string
// decodes to the root path.
func DecodePath(id string) Path {
	if id == "" {
		return Path{}
	}
	return Path(strings.Split(id, PathDelimiter))
}

// ValidateName rejects names that are blank or contain the delimiter.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if strings.Contains(name, PathDelimiter) {
		return fmt.Errorf("%w: %q must not contain %q", ErrInvalidName, name, PathDelimiter)
	}
	return nil
}

func (p Path) String() string { return EncodePath(p) }

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Name returns the last segment, or "" for the root.
func (p Path) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path of p's parent. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p.clone()[:len(p)-1]
}

// Child returns a new path with name appended. p is not modified.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
