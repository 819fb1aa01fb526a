package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
)

// Attribute keys of a task record in the nested-mapping file format.
const (
	AttrContent    = "content"
	AttrFrequency  = "frequency"
	AttrImportance = "importance"
	AttrEffort     = "effort"
	AttrEstimate   = "estimate"
)

// legacyAttrs maps the keys written by the original OpsMap prototype.
var legacyAttrs = map[string]string{
	"業務":   AttrContent,
	"頻度":   AttrFrequency,
	"重要度":  AttrImportance,
	"工数":   AttrEffort,
	"時間目安": AttrEstimate,
}

const (
	DefaultImportance = 3
	MinImportance     = 1
	MaxImportance     = 5
)

// TaskRecord is the fixed attribute set carried by a task node.
type TaskRecord struct {
	Content     string
	Frequency   Frequency
	Importance  int
	EffortHours float64 // hours per week
	EstimateMin float64 // minutes per task
}

// Attr is one key/value pair of a task record, in file order.
type Attr struct {
	Key   string
	Value any
}

// DefaultTaskRecord returns the record shown for a freshly created task.
func DefaultTaskRecord() TaskRecord {
	return TaskRecord{
		Frequency:  FrequencyWeekly,
		Importance: DefaultImportance,
	}
}

// CanonicalAttrKey maps legacy attribute keys to their canonical form.
// Unknown keys are returned unchanged with ok=false.
func CanonicalAttrKey(key string) (string, bool) {
	switch key {
	case AttrContent, AttrFrequency, AttrImportance, AttrEffort, AttrEstimate:
		return key, true
	}
	if k, ok := legacyAttrs[key]; ok {
		return k, true
	}
	return key, false
}

// IsContentKey reports whether key is the reserved attribute that tags a
// raw mapping as a task.
func IsContentKey(key string) bool {
	k, _ := CanonicalAttrKey(key)
	return k == AttrContent
}

// ParseFrequency accepts canonical values and the legacy labels.
func ParseFrequency(s string) (Frequency, error) {
	if f := Frequency(s); f.Valid() {
		return f, nil
	}
	if f, ok := legacyFrequencies[s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown frequency %q (expected daily|weekly|monthly|other)", s)
}

// TaskRecordFromAttrs builds a record from a raw attribute bag, applying
// defaults for anything missing or of the wrong type.
func TaskRecordFromAttrs(attrs map[string]any) TaskRecord {
	rec, _ := DecodeTaskAttrs(attrs)
	return rec
}

// DecodeTaskAttrs is TaskRecordFromAttrs but also reports every field that
// was present with an unusable value. The returned record is always fully
// defaulted. When a canonical key and its legacy alias are both present the
// canonical key wins.
func DecodeTaskAttrs(attrs map[string]any) (TaskRecord, []error) {
	rec := DefaultTaskRecord()
	var errs []error

	for _, rawKey := range decodeOrder(attrs) {
		v := attrs[rawKey]
		key, known := CanonicalAttrKey(rawKey)
		if !known {
			errs = append(errs, fmt.Errorf("unknown task attribute %q", rawKey))
			continue
		}
		switch key {
		case AttrContent:
			s, ok := v.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected string", key))
				continue
			}
			rec.Content = s
		case AttrFrequency:
			s, ok := v.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected string", key))
				continue
			}
			f, err := ParseFrequency(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				continue
			}
			rec.Frequency = f
		case AttrImportance:
			n, ok := toFloat(v)
			if !ok || n != math.Trunc(n) {
				errs = append(errs, fmt.Errorf("%s: expected integer", key))
				continue
			}
			if n < math.MinInt32 || n > math.MaxInt32 {
				errs = append(errs, fmt.Errorf("%s: %g out of range", key, n))
				continue
			}
			rec.Importance = int(n)
		case AttrEffort:
			n, ok := toFloat(v)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected number", key))
				continue
			}
			rec.EffortHours = n
		case AttrEstimate:
			n, ok := toFloat(v)
			if !ok {
				errs = append(errs, fmt.Errorf("%s: expected number", key))
				continue
			}
			rec.EstimateMin = n
		}
	}
	return rec, errs
}

// decodeOrder sorts keys so legacy aliases are applied before canonical keys.
func decodeOrder(attrs map[string]any) []string {
	keys := slices.Sorted(maps.Keys(attrs))
	slices.SortStableFunc(keys, func(a, b string) int {
		return legacyRank(a) - legacyRank(b)
	})
	return keys
}

func legacyRank(key string) int {
	if _, ok := legacyAttrs[key]; ok {
		return 0
	}
	return 1
}

// Validate checks field ranges. The tree store does not call it; callers at
// the input boundary do.
func (r TaskRecord) Validate() []error {
	var errs []error
	if !r.Frequency.Valid() {
		errs = append(errs, fmt.Errorf("frequency %q is not one of daily|weekly|monthly|other", r.Frequency))
	}
	if r.Importance < MinImportance || r.Importance > MaxImportance {
		errs = append(errs, fmt.Errorf("importance %d must be between %d and %d", r.Importance, MinImportance, MaxImportance))
	}
	if !IsFiniteNonNegative(r.EffortHours) {
		errs = append(errs, fmt.Errorf("effort %v must be a finite non-negative number", r.EffortHours))
	}
	if !IsFiniteNonNegative(r.EstimateMin) {
		errs = append(errs, fmt.Errorf("estimate %v must be a finite non-negative number", r.EstimateMin))
	}
	return errs
}

// Attrs returns the record as ordered attributes for serialization.
func (r TaskRecord) Attrs() []Attr {
	return []Attr{
		{AttrContent, r.Content},
		{AttrFrequency, string(r.Frequency)},
		{AttrImportance, r.Importance},
		{AttrEffort, r.EffortHours},
		{AttrEstimate, r.EstimateMin},
	}
}

// IsFiniteNonNegative rejects negatives, NaN and infinities.
func IsFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
