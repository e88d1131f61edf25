package pages

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/settings"
)

// Field names of the article settings page.
const (
	FieldPageFormat     = "page_format"
	FieldFontSize       = "font_size"
	FieldTwoColumn      = "option_twocolumn"
	FieldDefaultMargins = "option_default_margins"
	FieldMarginLeft     = "margin_left"
	FieldMarginRight    = "margin_right"
	FieldMarginTop      = "margin_top"
	FieldMarginBottom   = "margin_bottom"
)

// DefaultMargin is the margin, in centimetres, forced while default margins
// are in use.
const DefaultMargin = 3.5

// MarginFields lists the margins in display order.
var MarginFields = []string{FieldMarginLeft, FieldMarginRight, FieldMarginTop, FieldMarginBottom}

// ArticleSettingsPage holds the page layout of an article document.
type ArticleSettingsPage struct {
	basePage
}

var _ Page = (*ArticleSettingsPage)(nil)

// NewArticleSettingsPage builds the page from its declaration. The
// declaration must provide every article field; when it does not group the
// margins, the default-margins group is bound here.
func NewArticleSettingsPage(record settings.Record, def model.Page, options ...binding.Option) (*ArticleSettingsPage, error) {
	for _, name := range append([]string{FieldPageFormat, FieldFontSize, FieldTwoColumn, FieldDefaultMargins}, MarginFields...) {
		if _, ok := def.Field(name); !ok {
			return nil, fmt.Errorf("pages: page %q does not declare %q", def.ID, name)
		}
	}
	if len(def.DefaultGroups) == 0 {
		def.DefaultGroups = []model.DefaultGroup{{
			Toggle: FieldDefaultMargins,
			Value:  DefaultMargin,
			Fields: append([]string(nil), MarginFields...),
		}}
	}

	registry, err := binding.NewFromPage(record, def, options...)
	if err != nil {
		return nil, err
	}
	return &ArticleSettingsPage{basePage{def: def, registry: registry}}, nil
}

// LoadPresets applies presets; missing keys keep the live record values.
func (p *ArticleSettingsPage) LoadPresets(presets settings.Record) {
	p.registry.ApplyPresets(presets)
}

// OnActivation focuses the page format list.
func (p *ArticleSettingsPage) OnActivation() string {
	return FieldPageFormat
}

// UsesDefaultMargins reports whether the margins are held at DefaultMargin.
func (p *ArticleSettingsPage) UsesDefaultMargins() bool {
	value, _ := p.registry.Value(FieldDefaultMargins)
	active, _ := value.(bool)
	return active
}
