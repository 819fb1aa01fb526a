package treefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
)

// ErrMalformed indicates a document that is not a valid nested mapping.
var ErrMalformed = errors.New("malformed tree file")

// object is a decoded JSON object with its key order kept.
type object struct {
	entries []entry
}

type entry struct {
	key    string
	obj    *object // set for nested objects
	scalar any
}

// Import parses a tree file into a new store. It never returns a partial
// tree: on any problem it returns ErrMalformed listing every problem found.
func Import(r io.Reader) (*tree.Store, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := readObject(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the top-level object", ErrMalformed)
	}

	s := tree.NewStore()
	var problems []error
	if root.hasContent() {
		problems = append(problems, fmt.Errorf("the top-level object must be a department, not a task"))
	} else {
		problems = buildChildren(s, domain.Path{}, root)
	}
	if len(problems) > 0 {
		return nil, formatProblems(problems)
	}
	return s, nil
}

func buildChildren(s *tree.Store, parent domain.Path, obj *object) []error {
	var problems []error
	for _, e := range obj.entries {
		path := parent.Child(e.key)
		if e.obj == nil {
			problems = append(problems, fmt.Errorf("%s: expected an object, got %v", describe(path), e.scalar))
			continue
		}
		if e.obj.hasContent() {
			rec, errs := taskRecord(path, e.obj)
			problems = append(problems, errs...)
			if len(errs) > 0 {
				continue
			}
			if err := s.AddTask(parent, e.key, rec); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", describe(path), err))
			}
			continue
		}
		if err := s.AddBranch(parent, e.key); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", describe(path), err))
			continue
		}
		problems = append(problems, buildChildren(s, path, e.obj)...)
	}
	return problems
}

func taskRecord(path domain.Path, obj *object) (domain.TaskRecord, []error) {
	var problems []error
	attrs := make(map[string]any, len(obj.entries))
	for _, e := range obj.entries {
		if e.obj != nil {
			problems = append(problems, fmt.Errorf("%s: task nodes cannot contain %q", describe(path), e.key))
			continue
		}
		key, _ := domain.CanonicalAttrKey(e.key)
		if _, dup := attrs[key]; dup {
			problems = append(problems, fmt.Errorf("%s: duplicate attribute %q", describe(path), key))
			continue
		}
		attrs[key] = e.scalar
	}
	rec, errs := domain.DecodeTaskAttrs(attrs)
	errs = append(errs, rec.Validate()...)
	for _, err := range errs {
		problems = append(problems, fmt.Errorf("%s: %w", describe(path), err))
	}
	return rec, problems
}

func (o *object) hasContent() bool {
	for _, e := range o.entries {
		if domain.IsContentKey(e.key) {
			return true
		}
	}
	return false
}

func readObject(dec *json.Decoder) (*object, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}
	return readObjectBody(dec)
}

func readValue(dec *json.Decoder, key string) (entry, error) {
	tok, err := dec.Token()
	if err != nil {
		return entry{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			child, err := readObjectBody(dec)
			if err != nil {
				return entry{}, err
			}
			return entry{key: key, obj: child}, nil
		default:
			return entry{}, fmt.Errorf("%q: arrays are not supported", key)
		}
	default:
		return entry{key: key, scalar: v}, nil
	}
}

// readObjectBody reads the rest of an object whose '{' was consumed.
func readObjectBody(dec *json.Decoder) (*object, error) {
	obj := &object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a key, got %v", keyTok)
		}
		e, err := readValue(dec, key)
		if err != nil {
			return nil, err
		}
		obj.entries = append(obj.entries, e)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func describe(p domain.Path) string {
	return fmt.Sprintf("%q", domain.EncodePath(p))
}

func formatProblems(problems []error) error {
	msg := fmt.Sprintf("%d problems:", len(problems))
	for _, p := range problems {
		msg += "\n  - " + p.Error()
	}
	return fmt.Errorf("%w: %s", ErrMalformed, msg)
}
