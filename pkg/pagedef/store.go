package pagedef

import (
	"sort"

	"github.com/goliatone/go-formbind/pkg/model"
)

// Store keeps the parsed page and entry type definitions. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	pages      map[string]model.Page
	entryTypes map[string]model.EntryType
}

// Page returns the page definition registered under id.
func (s *Store) Page(id string) (model.Page, bool) {
	if s == nil {
		return model.Page{}, false
	}
	page, ok := s.pages[id]
	if !ok {
		return model.Page{}, false
	}
	return clonePage(page), true
}

// EntryType returns the bibliography entry type registered under name.
func (s *Store) EntryType(name string) (model.EntryType, bool) {
	if s == nil {
		return model.EntryType{}, false
	}
	entry, ok := s.entryTypes[name]
	return entry, ok
}

// PageIDs lists page ids in sorted order.
func (s *Store) PageIDs() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.pages)
}

// EntryTypeNames lists entry type names in sorted order.
func (s *Store) EntryTypeNames() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.entryTypes)
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || (len(s.pages) == 0 && len(s.entryTypes) == 0)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clonePage(page model.Page) model.Page {
	out := page
	out.Fields = make([]model.Field, len(page.Fields))
	for i, field := range page.Fields {
		field.Options = append([]string(nil), field.Options...)
		if field.Range != nil {
			r := *field.Range
			field.Range = &r
		}
		out.Fields[i] = field
	}
	out.DefaultGroups = make([]model.DefaultGroup, len(page.DefaultGroups))
	for i, group := range page.DefaultGroups {
		group.Fields = append([]string(nil), group.Fields...)
		out.DefaultGroups[i] = group
	}
	return out
}
