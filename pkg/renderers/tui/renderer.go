package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
	"github.com/goliatone/go-formbind/pkg/wizard"
)

const prettyTemplate = `{% if title %}{{ title|safe }}
{% endif %}{% for entry in entries %}{{ entry.Path|safe }}: {{ entry.Value|safe }}
{% endfor %}`

var prettyTpl = pongo2.Must(pongo2.FromString(prettyTemplate))

// Renderer drives wizard pages from a terminal. Each prompt answer is reported
// to the page's registry, and the registry's updates are mirrored back so
// later prompts show forced values and skip locked fields.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       *zap.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the MIME type of Serialize output.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run walks the controller from its current page to the last one.
func (r *Renderer) Run(ctx context.Context, ctrl *wizard.Controller) error {
	if ctrl == nil {
		return errors.New("tui: nil controller")
	}
	for {
		if err := r.RunPage(ctx, ctrl.Current()); err != nil {
			return err
		}
		err := ctrl.Next()
		switch {
		case err == nil:
			continue
		case errors.Is(err, wizard.ErrLastPage):
			return nil
		case errors.Is(err, wizard.ErrIncomplete):
			if infoErr := r.info(ctx, r.theme.ErrorPrefix, err.Error()); infoErr != nil {
				return infoErr
			}
		default:
			return err
		}
	}
}

// RunPage prompts every editable field of page once, then re-prompts blank
// required fields until the page is valid.
func (r *Renderer) RunPage(ctx context.Context, page pages.Page) error {
	if page == nil {
		return errors.New("tui: nil page")
	}
	reg := page.Registry()
	page.ObserveView(r)
	defer page.ObserveView(nil)

	if err := r.heading(ctx, page); err != nil {
		return err
	}

	for _, field := range reg.Fields() {
		if err := r.promptField(ctx, reg, field); err != nil {
			return err
		}
	}

	for !reg.IsValid() {
		for _, name := range reg.BlankRequired() {
			field, _ := reg.Field(name)
			if err := r.info(ctx, r.theme.ErrorPrefix, fmt.Sprintf("%s is required", field.DisplayLabel())); err != nil {
				return err
			}
			if err := r.promptField(ctx, reg, field); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetValue implements binding.View. Values are read back from the registry
// when prompting, so only forced updates are worth surfacing.
func (r *Renderer) SetValue(name string, value any) {
	r.logger.Debug("view value", zap.String("field", name), zap.Any("value", value))
}

// SetEditable implements binding.View.
func (r *Renderer) SetEditable(name string, editable bool) {
	r.logger.Debug("view editable", zap.String("field", name), zap.Bool("editable", editable))
}

func (r *Renderer) heading(ctx context.Context, page pages.Page) error {
	title := page.Title()
	if title == "" {
		title = page.ID()
	}
	if sub := page.Subtitle(); sub != "" {
		title += " (" + sub + ")"
	}
	return r.info(ctx, r.theme.TitlePrefix, title)
}

func (r *Renderer) promptField(ctx context.Context, reg *binding.Registry, field model.Field) error {
	current, err := reg.Value(field.Name)
	if err != nil {
		return err
	}
	if !reg.Editable(field.Name) {
		return r.info(ctx, r.theme.InfoPrefix, fmt.Sprintf("%s: %s (default)", field.DisplayLabel(), formatValue(current)))
	}

	switch field.Kind {
	case model.FieldKindNumeric:
		return r.promptNumeric(ctx, reg, field, current)
	case model.FieldKindBoolean:
		active, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.DisplayLabel(),
			Default: active,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		return reg.OnToggle(field.Name, answer)
	case model.FieldKindChoice:
		selected, _ := current.(string)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.DisplayLabel(),
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, selected),
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			return fmt.Errorf("tui: selection %d out of range for %q", idx, field.Name)
		}
		return reg.OnSelect(field.Name, field.Options[idx])
	default:
		text, _ := current.(string)
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: field.DisplayLabel(),
			Default: text,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		return reg.OnEdit(field.Name, answer)
	}
}

func (r *Renderer) promptNumeric(ctx context.Context, reg *binding.Registry, field model.Field, current any) error {
	validate := func(raw string) error {
		_, err := parseNumber(field, raw)
		return err
	}
	for {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   field.DisplayLabel(),
			Default:   formatValue(current),
			Help:      field.Help,
			Validator: validate,
		})
		if err != nil {
			return err
		}
		value, err := parseNumber(field, answer)
		if err != nil {
			if infoErr := r.info(ctx, r.theme.ErrorPrefix, err.Error()); infoErr != nil {
				return infoErr
			}
			continue
		}
		return reg.OnNumericChange(field.Name, value)
	}
}

func (r *Renderer) info(ctx context.Context, prefix, msg string) error {
	return r.driver.Info(ctx, prefix+msg)
}

func parseNumber(field model.Field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field.DisplayLabel())
	}
	rng := field.Range
	if rng != nil && rng.Integer && value != math.Trunc(value) {
		return 0, fmt.Errorf("%s must be a whole number", field.DisplayLabel())
	}
	if rng.Bounded() {
		if value < rng.Min || value > rng.Max {
			return 0, fmt.Errorf("%s must be between %s and %s",
				field.DisplayLabel(), formatValue(rng.Min), formatValue(rng.Max))
		}
	}
	return value, nil
}

// Serialize renders rec in the configured output format.
func (r *Renderer) Serialize(rec settings.Record, title string) ([]byte, error) {
	if rec == nil {
		rec = settings.New()
	}
	switch r.outputFormat {
	case OutputFormatJSON:
		return json.MarshalIndent(rec, "", "  ")
	case OutputFormatYAML:
		return yaml.Marshal(map[string]any(rec))
	case OutputFormatPrettyText:
		out, err := prettyTpl.Execute(pongo2.Context{
			"title":   title,
			"entries": flatten("", map[string]any(rec)),
		})
		if err != nil {
			return nil, fmt.Errorf("tui: render summary: %w", err)
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, r.outputFormat)
	}
}

type entry struct {
	Path  string
	Value string
}

func flatten(prefix string, node map[string]any) []entry {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []entry
	for _, key := range keys {
		path := settings.JoinPath(prefix, key)
		switch child := node[key].(type) {
		case map[string]any:
			out = append(out, flatten(path, child)...)
		case settings.Record:
			out = append(out, flatten(path, map[string]any(child))...)
		default:
			out = append(out, entry{Path: path, Value: formatValue(child)})
		}
	}
	return out
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
