package pages_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/pagedef"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
)

func loadStore(t *testing.T) *pagedef.Store {
	t.Helper()
	store, err := pagedef.LoadDefaults()
	require.NoError(t, err)
	return store
}

func newArticleEntryPage(t *testing.T, record settings.Record) *pages.FieldsEntryPage {
	t.Helper()
	store := loadStore(t)
	def, ok := store.Page("bibtex-fields")
	require.True(t, ok)
	entry, ok := store.EntryType("article")
	require.True(t, ok)

	page, err := pages.NewFieldsEntryPage(record, def, entry)
	require.NoError(t, err)
	return page
}

func TestFieldsEntryPage_Layout(t *testing.T) {
	page := newArticleEntryPage(t, settings.New())

	require.Equal(t, "bibtex-fields", page.ID())
	require.Equal(t, "Step 2: Entry fields", page.Subtitle())
	require.Equal(t, []string{"author", "title", "journal", "year"}, page.RequiredFields())
	require.Equal(t, []string{"volume", "number", "pages", "month", "note"}, page.OptionalFields())
	require.Equal(t, pages.IdentifierField, page.OnActivation())

	reg := page.Registry()
	require.Len(t, reg.Fields(), 10)
	require.Equal(t, "fields", reg.Section())
	require.Equal(t, []string{"identifier", "author", "title", "journal", "year"}, reg.BlankRequired())
}

func TestFieldsEntryPage_ValidOnceRequiredFilled(t *testing.T) {
	record := settings.New()
	page := newArticleEntryPage(t, record)
	reg := page.Registry()

	require.NoError(t, reg.OnEdit("identifier", "Knuth1984"))
	for _, name := range page.RequiredFields() {
		require.False(t, reg.IsValid())
		require.NoError(t, reg.OnEdit(name, "x"))
	}
	require.True(t, reg.IsValid())

	require.NoError(t, reg.OnEdit("note", ""))
	require.True(t, reg.IsValid())

	got, ok := record.Get("fields.identifier")
	require.True(t, ok)
	require.Equal(t, "Knuth1984", got)
}

func TestFieldsEntryPage_LoadPresetsClearsPreviousEntry(t *testing.T) {
	record := settings.New()
	page := newArticleEntryPage(t, record)
	reg := page.Registry()
	require.NoError(t, reg.OnEdit("identifier", "Old2001"))
	require.NoError(t, reg.OnEdit("volume", "12"))

	page.LoadPresets(settings.Record{
		"fields": map[string]any{"author": "Lamport", "year": "1994"},
	})

	value, err := reg.Value("identifier")
	require.NoError(t, err)
	require.Equal(t, "", value)
	value, err = reg.Value("volume")
	require.NoError(t, err)
	require.Equal(t, "", value)
	value, err = reg.Value("author")
	require.NoError(t, err)
	require.Equal(t, "Lamport", value)
	require.Equal(t, []string{"identifier", "title", "journal"}, reg.BlankRequired())
}

func TestFieldsEntryPage_FieldClash(t *testing.T) {
	def := model.Page{ID: "bibtex-fields", Section: "fields"}
	entry := model.EntryType{Name: "broken", Required: []string{"identifier"}}

	_, err := pages.NewFieldsEntryPage(nil, def, entry)
	require.Error(t, err)
	require.True(t, errors.Is(err, binding.ErrDuplicateField))
}

func newArticlePage(t *testing.T, record settings.Record) *pages.ArticleSettingsPage {
	t.Helper()
	def, ok := loadStore(t).Page("article-settings")
	require.True(t, ok)
	page, err := pages.NewArticleSettingsPage(record, def)
	require.NoError(t, err)
	return page
}

func TestArticleSettingsPage_DefaultsAndToggle(t *testing.T) {
	record := settings.New()
	page := newArticlePage(t, record)
	reg := page.Registry()

	require.Equal(t, pages.FieldPageFormat, page.OnActivation())
	require.True(t, page.UsesDefaultMargins())
	require.True(t, reg.IsValid())
	for _, name := range pages.MarginFields {
		require.False(t, reg.Editable(name), name)
	}

	require.NoError(t, reg.OnToggle(pages.FieldDefaultMargins, false))
	require.NoError(t, reg.OnNumericChange(pages.FieldMarginLeft, 2.0))
	require.NoError(t, reg.OnSelect(pages.FieldPageFormat, "letterpaper"))
	require.NoError(t, reg.OnNumericChange(pages.FieldFontSize, 12))
	require.NoError(t, reg.OnToggle(pages.FieldTwoColumn, true))

	article := record.Section("article")
	require.Equal(t, 2.0, article[pages.FieldMarginLeft])
	require.Equal(t, "letterpaper", article[pages.FieldPageFormat])
	require.Equal(t, 12.0, article[pages.FieldFontSize])
	require.Equal(t, true, article[pages.FieldTwoColumn])
	require.Equal(t, false, article[pages.FieldDefaultMargins])
}

func TestArticleSettingsPage_FontSizeIsWholePoints(t *testing.T) {
	record := settings.New()
	page := newArticlePage(t, record)
	reg := page.Registry()

	require.NoError(t, reg.OnNumericChange(pages.FieldFontSize, 11.7))
	require.Equal(t, 11.0, record.Section("article")[pages.FieldFontSize])

	page.LoadPresets(settings.Record{"article": map[string]any{"font_size": 9.5}})
	require.Equal(t, 9.0, record.Section("article")[pages.FieldFontSize])
}

func TestArticleSettingsPage_LoadPresets(t *testing.T) {
	record := settings.New()
	page := newArticlePage(t, record)
	reg := page.Registry()
	require.NoError(t, reg.OnSelect(pages.FieldPageFormat, "b5paper"))

	page.LoadPresets(settings.Record{
		"article": map[string]any{
			"font_size":              10.0,
			"option_default_margins": false,
			"margin_top":             2.5,
		},
	})

	value, _ := reg.Value(pages.FieldPageFormat)
	require.Equal(t, "b5paper", value, "missing preset keeps the live value")
	value, _ = reg.Value(pages.FieldFontSize)
	require.Equal(t, 10.0, value)
	value, _ = reg.Value(pages.FieldMarginTop)
	require.Equal(t, 2.5, value)
	require.False(t, page.UsesDefaultMargins())
	require.True(t, reg.Editable(pages.FieldMarginTop))
}

func TestArticleSettingsPage_MissingField(t *testing.T) {
	def, ok := loadStore(t).Page("article-settings")
	require.True(t, ok)
	def.Fields = def.Fields[:3]

	_, err := pages.NewArticleSettingsPage(nil, def)
	require.ErrorContains(t, err, "does not declare")
}
