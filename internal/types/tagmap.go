package types

import (
	"maps"
	"sort"
	"strings"
)

// TagMap is a mapping from canonical (or, before Tag Mapper normalization,
// vendor) string keys to heterogeneous Value entries. Keys are always
// stored upper-cased; callers may pass any case to Get/Set and it will be
// upper-cased on their behalf.
type TagMap map[string]Value

// NewTagMap returns an empty, ready-to-use TagMap.
func NewTagMap() TagMap {
	return make(TagMap)
}

// Get returns the value at key and whether it was present.
func (t TagMap) Get(key string) (Value, bool) {
	v, ok := t[strings.ToUpper(key)]
	return v, ok
}

// Has reports whether key is present.
func (t TagMap) Has(key string) bool {
	_, ok := t[strings.ToUpper(key)]
	return ok
}

// GetString returns the string form of key, or "" if absent.
func (t TagMap) GetString(key string) string {
	v, ok := t.Get(key)
	if !ok {
		return ""
	}
	return v.AsString()
}

// GetInt returns the integer form of key, or 0 if absent.
func (t TagMap) GetInt(key string) int {
	v, ok := t.Get(key)
	if !ok {
		return 0
	}
	return v.AsInt()
}

// GetList returns the list form of key, or nil if absent.
func (t TagMap) GetList(key string) []string {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	return v.AsList()
}

// GetBytes returns the bytes form of key, or nil if absent.
func (t TagMap) GetBytes(key string) []byte {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	return v.AsBytes()
}

// Set stores v under the upper-cased key.
func (t TagMap) Set(key string, v Value) {
	t[strings.ToUpper(key)] = v
}

// SetString is a convenience wrapper for Set(key, types.String(s)).
func (t TagMap) SetString(key, s string) {
	t.Set(key, String(s))
}

// SetInt is a convenience wrapper for Set(key, types.Int(i)).
func (t TagMap) SetInt(key string, i int) {
	t.Set(key, Int(i))
}

// Delete removes key, if present.
func (t TagMap) Delete(key string) {
	delete(t, strings.ToUpper(key))
}

// Rename moves the value at from to to, unconditionally overwriting any
// existing value at to. If from is absent, Rename is a no-op — this is
// exactly the renaming behavior the Tag Mapper's vendor-key table requires.
//
// Reports whether a move happened.
func (t TagMap) Rename(from, to string) bool {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	v, ok := t[from]
	if !ok {
		return false
	}
	t[to] = v
	delete(t, from)
	return true
}

// Keys returns the map's keys in sorted order, for deterministic iteration
// (used by tests and by any code that must produce reproducible output).
func (t TagMap) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of t.
func (t TagMap) Clone() TagMap {
	if t == nil {
		return nil
	}
	out := make(TagMap, len(t))
	maps.Copy(out, t)
	return out
}

// FillMissing copies every key from other that is not already present in t.
// t is returned for chaining. This implements the "fill-missing-only" merge
// direction used throughout the splitter strategies and the fallback path.
func (t TagMap) FillMissing(other TagMap) TagMap {
	for k, v := range other {
		if _, ok := t[k]; !ok {
			t[k] = v
		}
	}
	return t
}

// Overlay copies every key from other into t, overwriting any existing
// value. t is returned for chaining.
func (t TagMap) Overlay(other TagMap) TagMap {
	maps.Copy(t, other)
	return t
}

// Equal reports whether t and other hold the same keys and values.
func (t TagMap) Equal(other TagMap) bool {
	return maps.EqualFunc(t, other, Value.Equal)
}
