package view

import (
	"sort"
)

// Attributes is an insertion-ordered set of HTML attributes. The zero value
// is an empty set. Attributes is immutable: With and Merge return copies.
type Attributes struct {
	keys   []string
	values map[string]any
}

// Attrs builds Attributes from alternating key/value pairs. Pairs whose key is
// not a string are skipped.
func Attrs(pairs ...any) Attributes {
	var attrs Attributes
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		attrs = attrs.With(key, pairs[i+1])
	}
	return attrs
}

// AttributesFrom converts attribute-like values. Plain maps are ordered by
// key since they carry no insertion order.
func AttributesFrom(value any) (Attributes, bool) {
	switch v := value.(type) {
	case Attributes:
		return v, true
	case *Attributes:
		if v == nil {
			return Attributes{}, true
		}
		return *v, true
	case map[string]any:
		return fromSortedMap(v), true
	case map[string]string:
		converted := make(map[string]any, len(v))
		for key, val := range v {
			converted[key] = val
		}
		return fromSortedMap(converted), true
	default:
		return Attributes{}, false
	}
}

func fromSortedMap(m map[string]any) Attributes {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := Attributes{keys: keys, values: make(map[string]any, len(m))}
	for _, key := range keys {
		attrs.values[key] = m[key]
	}
	return attrs
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.keys)
}

// Keys returns the attribute names in insertion order.
func (a Attributes) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Value returns the value of key, or nil.
func (a Attributes) Value(key string) any {
	return a.values[key]
}

// Has reports whether key is set.
func (a Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// With returns a copy with key set to value. An existing key keeps its
// position.
func (a Attributes) With(key string, value any) Attributes {
	next := a.clone(1)
	if _, exists := next.values[key]; !exists {
		next.keys = append(next.keys, key)
	}
	next.values[key] = value
	return next
}

// Merge returns a copy where entries of other replace entries of a. Replaced
// keys keep their position; new keys are appended.
func (a Attributes) Merge(other Attributes) Attributes {
	next := a.clone(other.Len())
	for _, key := range other.keys {
		if _, exists := next.values[key]; !exists {
			next.keys = append(next.keys, key)
		}
		next.values[key] = other.values[key]
	}
	return next
}

// Map returns the attributes as a plain map.
func (a Attributes) Map() map[string]any {
	out := make(map[string]any, len(a.keys))
	for _, key := range a.keys {
		out[key] = a.values[key]
	}
	return out
}

func (a Attributes) clone(extra int) Attributes {
	next := Attributes{
		keys:   make([]string, len(a.keys), len(a.keys)+extra),
		values: make(map[string]any, len(a.keys)+extra),
	}
	copy(next.keys, a.keys)
	for key, value := range a.values {
		next.values[key] = value
	}
	return next
}
