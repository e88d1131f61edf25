package pagedef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/model"
)

// LoadFS walks fsys and parses every JSON/YAML definition file. Page ids and
// entry type names must be unique across files. A nil fsys yields an empty
// store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		pages:      make(map[string]model.Page),
		entryTypes: make(map[string]model.EntryType),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("pagedef: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Pages {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("pagedef: file %s defines an empty page id", path)
			}
			if _, exists := store.pages[id]; exists {
				return fmt.Errorf("pagedef: duplicate page %q (file %s)", id, path)
			}
			page, err := normalisePage(raw, id, path)
			if err != nil {
				return err
			}
			store.pages[id] = page
		}

		for rawName, raw := range doc.EntryTypes {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("pagedef: file %s defines an empty entry type", path)
			}
			if _, exists := store.entryTypes[name]; exists {
				return fmt.Errorf("pagedef: duplicate entry type %q (file %s)", name, path)
			}
			entry, err := normaliseEntryType(raw, name, path)
			if err != nil {
				return err
			}
			store.entryTypes[name] = entry
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadDefaults parses the embedded definitions.
func LoadDefaults() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

type documentFile struct {
	Pages      map[string]pageFile      `json:"pages" yaml:"pages"`
	EntryTypes map[string]entryTypeFile `json:"entryTypes" yaml:"entryTypes"`
}

type pageFile struct {
	Title         string               `json:"title" yaml:"title"`
	Subtitle      string               `json:"subtitle" yaml:"subtitle"`
	Section       string               `json:"section" yaml:"section"`
	Fields        []fieldFile          `json:"fields" yaml:"fields"`
	DefaultGroups []model.DefaultGroup `json:"defaultGroups" yaml:"defaultGroups"`
}

type fieldFile struct {
	Name     string              `json:"name" yaml:"name"`
	Kind     string              `json:"kind" yaml:"kind"`
	Required bool                `json:"required" yaml:"required"`
	Label    string              `json:"label" yaml:"label"`
	Help     string              `json:"help" yaml:"help"`
	Default  any                 `json:"default" yaml:"default"`
	Options  []string            `json:"options" yaml:"options"`
	Range    *model.NumericRange `json:"range" yaml:"range"`
}

type entryTypeFile struct {
	Description string   `json:"description" yaml:"description"`
	Required    []string `json:"required" yaml:"required"`
	Optional    []string `json:"optional" yaml:"optional"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("pagedef: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("pagedef: parse %s: invalid JSON or YAML", source)
}

func normalisePage(raw pageFile, id, source string) (model.Page, error) {
	page := model.Page{
		ID:       id,
		Title:    strings.TrimSpace(raw.Title),
		Subtitle: strings.TrimSpace(raw.Subtitle),
		Section:  strings.TrimSpace(raw.Section),
		Fields:   make([]model.Field, 0, len(raw.Fields)),
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, rf := range raw.Fields {
		name := strings.TrimSpace(rf.Name)
		if name == "" {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) field %d has no name", id, source, idx)
		}
		if _, exists := seen[name]; exists {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) defines duplicate field %q", id, source, name)
		}
		seen[name] = struct{}{}

		kind, err := model.ParseFieldKind(rf.Kind)
		if err != nil {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) field %q: %w", id, source, name, err)
		}
		if kind == model.FieldKindChoice && len(rf.Options) == 0 {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) choice field %q has no options", id, source, name)
		}
		if rf.Range != nil && rf.Range.Min > rf.Range.Max {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) field %q has min > max", id, source, name)
		}
		if r := rf.Range; r != nil && r.Integer && (r.Min != math.Trunc(r.Min) || r.Max != math.Trunc(r.Max)) {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) integer field %q has fractional bounds", id, source, name)
		}

		page.Fields = append(page.Fields, model.Field{
			Name:     name,
			Kind:     kind,
			Required: rf.Required && kind == model.FieldKindText,
			Label:    strings.TrimSpace(rf.Label),
			Help:     strings.TrimSpace(rf.Help),
			Default:  rf.Default,
			Options:  append([]string(nil), rf.Options...),
			Range:    rf.Range,
		})
	}

	for _, group := range raw.DefaultGroups {
		if _, ok := seen[group.Toggle]; !ok {
			return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) default group toggle %q is not a field", id, source, group.Toggle)
		}
		for _, member := range group.Fields {
			if _, ok := seen[member]; !ok {
				return model.Page{}, fmt.Errorf("pagedef: page %q (file %s) default group member %q is not a field", id, source, member)
			}
		}
		page.DefaultGroups = append(page.DefaultGroups, model.DefaultGroup{
			Toggle: group.Toggle,
			Value:  group.Value,
			Fields: append([]string(nil), group.Fields...),
		})
	}

	return page, nil
}

func normaliseEntryType(raw entryTypeFile, name, source string) (model.EntryType, error) {
	entry := model.EntryType{
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
	}
	seen := make(map[string]struct{})
	add := func(list []string, dest *[]string) error {
		for _, field := range list {
			field = strings.TrimSpace(field)
			if field == "" {
				return fmt.Errorf("pagedef: entry type %q (file %s) lists an empty field", name, source)
			}
			if _, exists := seen[field]; exists {
				return fmt.Errorf("pagedef: entry type %q (file %s) lists %q twice", name, source, field)
			}
			seen[field] = struct{}{}
			*dest = append(*dest, field)
		}
		return nil
	}
	if err := add(raw.Required, &entry.Required); err != nil {
		return model.EntryType{}, err
	}
	if err := add(raw.Optional, &entry.Optional); err != nil {
		return model.EntryType{}, err
	}
	return entry, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
