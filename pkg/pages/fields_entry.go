package pages

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/settings"
)

// IdentifierField is the citation key every bibliography entry requires.
const IdentifierField = "identifier"

// FieldsEntryPage collects the fields of one bibliography entry: the page's
// own fields (the identifier), then the entry type's required fields, then its
// optional ones.
type FieldsEntryPage struct {
	basePage
	entryType model.EntryType
	required  []string
	optional  []string
}

var _ Page = (*FieldsEntryPage)(nil)

// NewFieldsEntryPage builds the page for entryType on top of the declaration
// def. A field named by both def and the entry type is a construction error.
func NewFieldsEntryPage(record settings.Record, def model.Page, entryType model.EntryType, options ...binding.Option) (*FieldsEntryPage, error) {
	def.Fields = append([]model.Field(nil), def.Fields...)
	if _, ok := def.Field(IdentifierField); !ok {
		def.Fields = append([]model.Field{{
			Name:     IdentifierField,
			Kind:     model.FieldKindText,
			Required: true,
			Label:    "Identifier",
		}}, def.Fields...)
	}

	page := &FieldsEntryPage{entryType: entryType}
	for _, name := range entryType.Required {
		def.Fields = append(def.Fields, model.Field{Name: name, Kind: model.FieldKindText, Required: true})
		page.required = append(page.required, name)
	}
	for _, name := range entryType.Optional {
		def.Fields = append(def.Fields, model.Field{Name: name, Kind: model.FieldKindText})
		page.optional = append(page.optional, name)
	}

	registry, err := binding.NewFromPage(record, def, options...)
	if err != nil {
		return nil, fmt.Errorf("pages: entry type %q: %w", entryType.Name, err)
	}
	page.def = def
	page.registry = registry
	return page, nil
}

// EntryType returns the entry type the page was built for.
func (p *FieldsEntryPage) EntryType() model.EntryType {
	return p.entryType
}

// RequiredFields lists the entry type's required fields, identifier excluded.
func (p *FieldsEntryPage) RequiredFields() []string {
	return append([]string(nil), p.required...)
}

// OptionalFields lists the entry type's optional fields.
func (p *FieldsEntryPage) OptionalFields() []string {
	return append([]string(nil), p.optional...)
}

// LoadPresets empties every entry before applying presets, so values typed
// for a previous entry never leak into a new one.
func (p *FieldsEntryPage) LoadPresets(presets settings.Record) {
	p.registry.ClearAll()
	p.registry.ApplyPresets(presets)
}

// OnActivation focuses the identifier.
func (p *FieldsEntryPage) OnActivation() string {
	return IdentifierField
}
