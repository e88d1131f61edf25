package binding

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/settings"
)

type boundField struct {
	spec     model.Field
	path     string
	value    any
	lockedBy string
}

// Registry keeps a settings record synchronised with live edits and tracks
// which required text fields are blank. It is not safe for concurrent use:
// every event is expected to arrive on the goroutine that dispatches UI
// events, one at a time.
type Registry struct {
	record  settings.Record
	section string

	fields map[string]*boundField
	order  []string
	blank  map[string]struct{}

	groups   map[string]*defaultGroup
	groupSeq []string
	memberOf map[string]string

	observers []Observer
	view      View
	logger    *zap.Logger
}

// New constructs a registry bound to record. A nil record is replaced by an
// empty one the caller can retrieve through Record.
func New(record settings.Record, options ...Option) *Registry {
	if record == nil {
		record = settings.New()
	}
	r := &Registry{
		record:   record,
		fields:   make(map[string]*boundField),
		blank:    make(map[string]struct{}),
		groups:   make(map[string]*defaultGroup),
		memberOf: make(map[string]string),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// NewFromPage builds a registry from a page declaration: fields are
// registered in order and default groups bound afterwards. The page section is
// applied before options, so WithSection can still override it.
func NewFromPage(record settings.Record, page model.Page, options ...Option) (*Registry, error) {
	opts := append([]Option{WithSection(page.Section)}, options...)
	r := New(record, opts...)
	for _, field := range page.Fields {
		if err := r.RegisterField(field); err != nil {
			return nil, fmt.Errorf("binding: page %q: %w", page.ID, err)
		}
	}
	for _, group := range page.DefaultGroups {
		if err := r.BindDefaultGroup(group.Toggle, group.Value, group.Fields...); err != nil {
			return nil, fmt.Errorf("binding: page %q: %w", page.ID, err)
		}
	}
	return r, nil
}

// Register adds a field descriptor with no label, default or options.
func (r *Registry) Register(name string, kind model.FieldKind, required bool) error {
	return r.RegisterField(model.Field{Name: name, Kind: kind, Required: required})
}

// RegisterField adds a field descriptor. The initial value is taken from the
// live record when it holds a usable value, otherwise from the declared
// default. A required text field that starts blank counts as blank.
func (r *Registry) RegisterField(field model.Field) error {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return errors.New("binding: field name is required")
	}
	if field.Kind == "" {
		field.Kind = model.FieldKindText
	}
	if !field.Kind.Valid() {
		return fmt.Errorf("binding: field %q: unknown kind %q", name, field.Kind)
	}
	if _, exists := r.fields[name]; exists {
		return &DuplicateFieldError{Name: name}
	}
	field.Name = name

	f := &boundField{
		spec: field,
		path: settings.JoinPath(r.section, name),
	}
	if live, ok := r.record.Get(f.path); ok {
		if value, ok := coerce(field, live); ok {
			f.value = value
		}
	}
	if f.value == nil {
		f.value = fallbackValue(field)
	}

	r.fields[name] = f
	r.order = append(r.order, name)
	r.trackBlank(f)

	r.logger.Debug("field registered",
		zap.String("field", name),
		zap.String("kind", string(field.Kind)),
		zap.Bool("required", field.Required),
		zap.String("path", f.path))
	return nil
}

// OnEdit applies the full current text of a text field. It must be called
// after every insertion or deletion with the complete text, never a delta.
func (r *Registry) OnEdit(name, text string) error {
	f, err := r.lookupKind("OnEdit", name, model.FieldKindText)
	if err != nil {
		return err
	}
	f.value = text
	r.write(f)
	r.trackBlank(f)
	r.notify(name)
	return nil
}

// OnNumericChange stores a numeric value, clamped to the declared range and
// truncated for integer fields. An adjusted value is pushed back to the view.
// Numeric fields never take part in required-field tracking.
func (r *Registry) OnNumericChange(name string, value float64) error {
	f, err := r.lookupKind("OnNumericChange", name, model.FieldKindNumeric)
	if err != nil {
		return err
	}
	if f.lockedBy != "" {
		// widgets echo the forced value back when the group sets it
		if current, _ := f.value.(float64); current == value {
			return nil
		}
		return &LockedFieldError{Name: name, Toggle: f.lockedBy}
	}
	f.value = f.spec.Range.Clamp(value)
	r.write(f)
	if f.value != value {
		r.pushValue(name, f.value)
	}
	r.notify(name)
	return nil
}

// OnToggle stores a boolean field. When the field drives a default group the
// group members are forced or released accordingly.
func (r *Registry) OnToggle(name string, active bool) error {
	f, err := r.lookupKind("OnToggle", name, model.FieldKindBoolean)
	if err != nil {
		return err
	}
	f.value = active
	r.write(f)
	if group, ok := r.groups[name]; ok {
		r.applyGroup(group, active)
	}
	r.notify(name)
	return nil
}

// OnSelect stores the chosen option of a choice field.
func (r *Registry) OnSelect(name, option string) error {
	f, err := r.lookupKind("OnSelect", name, model.FieldKindChoice)
	if err != nil {
		return err
	}
	if len(f.spec.Options) > 0 && !f.spec.HasOption(option) {
		return &InvalidOptionError{Name: name, Option: option}
	}
	f.value = option
	r.write(f)
	r.notify(name)
	return nil
}

// IsValid reports whether every required text field holds text.
func (r *Registry) IsValid() bool {
	return len(r.blank) == 0
}

// BlankRequired lists the blank required fields in registration order.
func (r *Registry) BlankRequired() []string {
	if len(r.blank) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.blank))
	for _, name := range r.order {
		if _, ok := r.blank[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// ApplyPresets overwrites every field. Each value is resolved from
// presets[section][name] (or presets[name]), then from the live record, then
// from the declared default. The blank set is rebuilt from the resolved values
// and default groups are re-applied.
func (r *Registry) ApplyPresets(presets settings.Record) {
	r.blank = make(map[string]struct{})
	for _, name := range r.order {
		f := r.fields[name]
		value, source := r.resolve(f, presets)
		f.lockedBy = ""
		f.value = value
		r.write(f)
		r.trackBlank(f)
		r.pushValue(name, value)
		r.pushEditable(name, true)
		r.logger.Debug("preset applied",
			zap.String("field", name),
			zap.String("source", source))
	}
	r.reapplyGroups()
	r.notify("")
}

// ClearAll empties every text field and resets other kinds to their declared
// defaults. Required flags are untouched, so afterwards the blank set holds
// exactly the required text fields.
func (r *Registry) ClearAll() {
	r.blank = make(map[string]struct{})
	for _, name := range r.order {
		f := r.fields[name]
		f.lockedBy = ""
		if f.spec.Kind == model.FieldKindText {
			f.value = ""
		} else {
			f.value = fallbackValue(f.spec)
		}
		r.write(f)
		r.trackBlank(f)
		r.pushValue(name, f.value)
		r.pushEditable(name, true)
	}
	r.reapplyGroups()
	r.notify("")
}

// Value returns a field's current value.
func (r *Registry) Value(name string) (any, error) {
	f, ok := r.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Op: "Value", Name: name}
	}
	return f.value, nil
}

// Editable reports whether the field accepts edits. Unknown names and fields
// held by an active default group are not editable.
func (r *Registry) Editable(name string) bool {
	f, ok := r.fields[name]
	return ok && f.lockedBy == ""
}

// Path returns the record path a field is written to.
func (r *Registry) Path(name string) (string, error) {
	f, ok := r.fields[name]
	if !ok {
		return "", &UnknownFieldError{Op: "Path", Name: name}
	}
	return f.path, nil
}

// Field returns the descriptor registered under name.
func (r *Registry) Field(name string) (model.Field, bool) {
	f, ok := r.fields[name]
	if !ok {
		return model.Field{}, false
	}
	return f.spec, true
}

// Fields returns the descriptors in registration order.
func (r *Registry) Fields() []model.Field {
	out := make([]model.Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name].spec)
	}
	return out
}

// Record returns the bound settings record.
func (r *Registry) Record() settings.Record {
	return r.record
}

// Section returns the record section fields are stored under.
func (r *Registry) Section() string {
	return r.section
}

// SetView replaces the presentation layer. Presentation layers built after
// the registry attach themselves here.
func (r *Registry) SetView(view View) {
	r.view = view
}

// Observe subscribes fn to validity updates.
func (r *Registry) Observe(fn Observer) {
	if fn != nil {
		r.observers = append(r.observers, fn)
	}
}

func (r *Registry) lookupKind(op, name string, kind model.FieldKind) (*boundField, error) {
	f, ok := r.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Op: op, Name: name}
	}
	if f.spec.Kind != kind {
		return nil, &KindMismatchError{Op: op, Name: name, Want: kind, Got: f.spec.Kind}
	}
	return f, nil
}

func (r *Registry) trackBlank(f *boundField) {
	if f.spec.Kind != model.FieldKindText {
		return
	}
	if text, _ := f.value.(string); text == "" {
		if f.spec.Required {
			r.blank[f.spec.Name] = struct{}{}
		}
		return
	}
	delete(r.blank, f.spec.Name)
}

func (r *Registry) write(f *boundField) {
	if err := r.record.Set(f.path, f.value); err != nil {
		r.logger.Error("record write failed", zap.String("path", f.path), zap.Error(err))
	}
}

func (r *Registry) resolve(f *boundField, presets settings.Record) (any, string) {
	if raw, ok := presets.Get(f.path); ok {
		if value, ok := coerce(f.spec, raw); ok {
			return value, "preset"
		}
	}
	if raw, ok := r.record.Get(f.path); ok {
		if value, ok := coerce(f.spec, raw); ok {
			return value, "record"
		}
	}
	return fallbackValue(f.spec), "default"
}

func (r *Registry) notify(field string) {
	state := Validity{
		Field: field,
		Valid: r.IsValid(),
		Blank: r.BlankRequired(),
	}
	r.logger.Debug("revalidated",
		zap.String("field", field),
		zap.Bool("valid", state.Valid),
		zap.Strings("blank", state.Blank))
	for _, observer := range r.observers {
		observer(state)
	}
}

func (r *Registry) pushValue(name string, value any) {
	if r.view != nil {
		r.view.SetValue(name, value)
	}
}

func (r *Registry) pushEditable(name string, editable bool) {
	if r.view != nil {
		r.view.SetEditable(name, editable)
	}
}
