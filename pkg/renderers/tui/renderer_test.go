package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
	"github.com/goliatone/go-formbind/pkg/testsupport"
	"github.com/goliatone/go-formbind/pkg/wizard"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubDriver struct {
	inputs   []string
	confirms []bool
	selects  []int

	inputPrompts []string
	infos        []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputPrompts = append(s.inputPrompts, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("stub: no input left")
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, errors.New("stub: no confirm left")
	}
	next := s.confirms[0]
	s.confirms = s.confirms[1:]
	return next, nil
}

func (s *stubDriver) Select(context.Context, SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return 0, errors.New("stub: no select left")
	}
	next := s.selects[0]
	s.selects = s.selects[1:]
	return next, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestRunPage_RepromptsBlankRequired(t *testing.T) {
	record := settings.New()
	page := testsupport.FieldsPage(t, record, "misc")
	driver := &stubDriver{
		// identifier, author, title, howpublished, month, year, note, identifier again
		inputs: []string{"", "Ada Lovelace", "Notes", "", "", "1843", "", "Lovelace1843"},
	}
	renderer := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	require.NoError(t, renderer.RunPage(context.Background(), page))
	require.True(t, page.Registry().IsValid())
	require.Empty(t, driver.inputs)
	require.Contains(t, driver.infos, "! Identifier is required")

	got, ok := record.Get("fields.identifier")
	require.True(t, ok)
	require.Equal(t, "Lovelace1843", got)
	got, _ = record.Get("fields.author")
	require.Equal(t, "Ada Lovelace", got)
}

func TestRunPage_LockedMarginsAreSkipped(t *testing.T) {
	record := settings.New()
	page := testsupport.ArticlePage(t, record)
	driver := &stubDriver{
		selects:  []int{2},
		inputs:   []string{"30", "12"},
		confirms: []bool{true, true},
	}
	renderer := New(WithPromptDriver(driver))

	require.NoError(t, renderer.RunPage(context.Background(), page))
	require.Len(t, driver.inputPrompts, 2, "only font size is typed; margins are locked")

	var defaults int
	for _, msg := range driver.infos {
		if strings.HasSuffix(msg, "3.5 (default)") {
			defaults++
		}
	}
	require.Equal(t, 4, defaults)

	format, _ := record.Get("article.page_format")
	require.Equal(t, "b5paper", format)
	size, _ := record.Get("article.font_size")
	require.Equal(t, 12.0, size)
	left, _ := record.Get("article.margin_left")
	require.Equal(t, 3.5, left)

	out, err := New(WithOutputFormat(OutputFormatPrettyText)).Serialize(record, "article")
	require.NoError(t, err)
	testsupport.AssertGolden(t, filepath.Join("testdata", "article_session.pretty.golden"), out)
}

func TestRunPage_CustomMargins(t *testing.T) {
	record := settings.New()
	page := testsupport.ArticlePage(t, record)
	driver := &stubDriver{
		selects:  []int{0},
		inputs:   []string{"11", "2", "2.5", "1", "1"},
		confirms: []bool{false, false},
	}
	renderer := New(WithPromptDriver(driver))

	require.NoError(t, renderer.RunPage(context.Background(), page))
	require.False(t, page.UsesDefaultMargins())

	right, _ := record.Get("article.margin_right")
	require.Equal(t, 2.5, right)
	bottom, _ := record.Get("article.margin_bottom")
	require.Equal(t, 1.0, bottom)
}

func TestRunPage_PropagatesAbort(t *testing.T) {
	page := testsupport.FieldsPage(t, settings.New(), "misc")
	renderer := New(WithPromptDriver(abortDriver{&stubDriver{}}))

	err := renderer.RunPage(context.Background(), page)
	require.ErrorIs(t, err, ErrAborted)
}

type abortDriver struct{ *stubDriver }

func (abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func (abortDriver) Info(context.Context, string) error {
	return nil
}

func TestParseNumber(t *testing.T) {
	fontSize := model.Field{
		Name:  "font_size",
		Label: "Font size",
		Kind:  model.FieldKindNumeric,
		Range: &model.NumericRange{Min: 6, Max: 24, Integer: true},
	}
	fixed := model.Field{
		Name:  "columns",
		Kind:  model.FieldKindNumeric,
		Range: &model.NumericRange{Min: 5, Max: 5},
	}
	free := model.Field{Name: "offset", Kind: model.FieldKindNumeric, Range: &model.NumericRange{}}

	cases := []struct {
		name  string
		field model.Field
		raw   string
		want  float64
		err   string
	}{
		{name: "in range", field: fontSize, raw: " 12 ", want: 12},
		{name: "fraction on integer field", field: fontSize, raw: "11.5", err: "Font size must be a whole number"},
		{name: "above max", field: fontSize, raw: "30", err: "Font size must be between 6 and 24"},
		{name: "not a number", field: fontSize, raw: "big", err: "Font size must be a number"},
		{name: "single value range", field: fixed, raw: "5", want: 5},
		{name: "outside single value range", field: fixed, raw: "7", err: "columns must be between 5 and 5"},
		{name: "zero range is unbounded", field: free, raw: "-40.25", want: -40.25},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseNumber(tc.field, tc.raw)
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRun_WalksAllPages(t *testing.T) {
	record := settings.New()
	ctrl, err := wizard.New([]pages.Page{testsupport.FieldsPage(t, record, "misc"), testsupport.ArticlePage(t, record)})
	require.NoError(t, err)

	driver := &stubDriver{
		inputs:   []string{"Knuth1984", "", "", "", "", "", "", "10"},
		selects:  []int{3},
		confirms: []bool{false, true},
	}
	renderer := New(WithPromptDriver(driver))

	require.NoError(t, renderer.Run(context.Background(), ctrl))
	require.True(t, ctrl.Done())

	id, _ := record.Get("fields.identifier")
	require.Equal(t, "Knuth1984", id)
	format, _ := record.Get("article.page_format")
	require.Equal(t, "letterpaper", format)
}

func TestSerialize(t *testing.T) {
	rec := settings.Record{
		"article": map[string]any{
			"page_format": "a4paper",
			"font_size":   12.0,
		},
		"identifier": "Knuth1984",
	}

	cases := []struct {
		format OutputFormat
		want   string
	}{
		{
			format: OutputFormatPrettyText,
			want:   "Summary\narticle.font_size: 12\narticle.page_format: a4paper\nidentifier: Knuth1984\n",
		},
		{
			format: OutputFormatYAML,
			want:   "article:\n    font_size: 12\n    page_format: a4paper\nidentifier: Knuth1984\n",
		},
		{
			format: OutputFormatJSON,
			want:   "{\n  \"article\": {\n    \"font_size\": 12,\n    \"page_format\": \"a4paper\"\n  },\n  \"identifier\": \"Knuth1984\"\n}",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.format), func(t *testing.T) {
			out, err := New(WithOutputFormat(tc.format)).Serialize(rec, "Summary")
			require.NoError(t, err)
			require.Equal(t, tc.want, string(out))
		})
	}
}

func TestSerialize_PrettyDoesNotEscape(t *testing.T) {
	rec := settings.Record{"title": "Tom & Jerry <3"}
	out, err := New(WithOutputFormat(OutputFormatPrettyText)).Serialize(rec, "")
	require.NoError(t, err)
	require.Equal(t, "title: Tom & Jerry <3\n", string(out))
}

func TestParseOutputFormat(t *testing.T) {
	format, err := ParseOutputFormat("yaml")
	require.NoError(t, err)
	require.Equal(t, OutputFormatYAML, format)

	_, err = ParseOutputFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
