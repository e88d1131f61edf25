package settings

import (
	"fmt"
	"sort"
	"strings"
)

// Record is a caller-owned settings mapping. Keys are field names or section
// names whose values are nested maps. A Record is a reference type: every
// holder of the same Record observes the same writes.
type Record map[string]any

// New returns an empty record.
func New() Record {
	return make(Record)
}

// JoinPath builds the dotted path for a field, optionally under a section.
func JoinPath(section, name string) string {
	section = strings.TrimSpace(section)
	name = strings.TrimSpace(name)
	if section == "" {
		return name
	}
	if name == "" {
		return section
	}
	return section + "." + name
}

// Get resolves a dotted path.
func (r Record) Get(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	var current any = map[string]any(r)
	for _, segment := range strings.Split(path, ".") {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at a dotted path, creating intermediate sections as needed.
// Intermediate values that are not maps are replaced.
func (r Record) Set(path string, value any) error {
	if r == nil {
		return fmt.Errorf("settings: record is nil")
	}
	if path == "" {
		return fmt.Errorf("settings: empty path")
	}
	segments := strings.Split(path, ".")
	node := map[string]any(r)
	for _, segment := range segments[:len(segments)-1] {
		if segment == "" {
			return fmt.Errorf("settings: empty segment in path %q", path)
		}
		child, ok := asMap(node[segment])
		if !ok {
			child = make(map[string]any)
		}
		node[segment] = child
		node = child
	}
	last := segments[len(segments)-1]
	if last == "" {
		return fmt.Errorf("settings: empty segment in path %q", path)
	}
	node[last] = value
	return nil
}

// Section returns the nested map stored under name, creating it when absent.
func (r Record) Section(name string) map[string]any {
	if r == nil {
		return nil
	}
	if child, ok := asMap(r[name]); ok {
		r[name] = child
		return child
	}
	child := make(map[string]any)
	r[name] = child
	return child
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = deepCopy(v)
	}
	return out
}

// Keys lists the top-level keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asMap accepts both map[string]any and Record, and the map[any]any shape
// some YAML decoders produce for nested documents.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, typed != nil
	case Record:
		return map[string]any(typed), typed != nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case Record:
		return typed.Clone()
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
