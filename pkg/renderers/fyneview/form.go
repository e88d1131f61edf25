package fyneview

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/pages"
)

// Form renders one wizard page as a fyne form. Widget edits are reported to
// the page's registry and registry updates are written back to the widgets.
type Form struct {
	page   pages.Page
	reg    *binding.Registry
	logger *zap.Logger

	entries map[string]*widget.Entry
	checks  map[string]*widget.Check
	selects map[string]*widget.Select
	status  *widget.Label
	form    *widget.Form

	// updating is set while the registry writes to widgets so the widget
	// callbacks do not echo the value back.
	updating bool
}

var _ binding.View = (*Form)(nil)

// NewForm builds the widgets for page and attaches the form as its view.
func NewForm(page pages.Page, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Form{
		page:    page,
		reg:     page.Registry(),
		logger:  logger,
		entries: make(map[string]*widget.Entry),
		checks:  make(map[string]*widget.Check),
		selects: make(map[string]*widget.Select),
		status:  widget.NewLabel(""),
		form:    widget.NewForm(),
	}

	f.updating = true
	for _, field := range f.reg.Fields() {
		f.form.Append(label(field), f.build(field))
	}
	f.updating = false

	page.ObserveView(f)
	f.reg.Observe(f.showValidity)
	f.showValidity(binding.Validity{Valid: f.reg.IsValid(), Blank: f.reg.BlankRequired()})
	return f
}

// Object returns the canvas object to place in a window.
func (f *Form) Object() fyne.CanvasObject {
	heading := f.page.Title()
	if sub := f.page.Subtitle(); sub != "" {
		heading += "\n" + sub
	}
	return container.NewVBox(
		widget.NewLabelWithStyle(heading, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		f.form,
		f.status,
	)
}

// Focus returns the widget that should receive focus, if any.
func (f *Form) Focus() fyne.Focusable {
	name := f.page.OnActivation()
	if entry, ok := f.entries[name]; ok {
		return entry
	}
	if sel, ok := f.selects[name]; ok {
		return sel
	}
	if check, ok := f.checks[name]; ok {
		return check
	}
	return nil
}

// SetValue implements binding.View.
func (f *Form) SetValue(name string, value any) {
	f.updating = true
	defer func() { f.updating = false }()

	if entry, ok := f.entries[name]; ok {
		entry.SetText(formatValue(value))
		return
	}
	if check, ok := f.checks[name]; ok {
		active, _ := value.(bool)
		check.SetChecked(active)
		return
	}
	if sel, ok := f.selects[name]; ok {
		option, _ := value.(string)
		sel.SetSelected(option)
	}
}

// SetEditable implements binding.View.
func (f *Form) SetEditable(name string, editable bool) {
	var target fyne.Disableable
	if entry, ok := f.entries[name]; ok {
		target = entry
	} else if check, ok := f.checks[name]; ok {
		target = check
	} else if sel, ok := f.selects[name]; ok {
		target = sel
	}
	if target == nil {
		return
	}
	if editable {
		target.Enable()
	} else {
		target.Disable()
	}
}

func (f *Form) build(field model.Field) fyne.CanvasObject {
	current, _ := f.reg.Value(field.Name)
	name := field.Name

	var object fyne.CanvasObject
	switch field.Kind {
	case model.FieldKindBoolean:
		check := widget.NewCheck("", func(active bool) {
			if f.updating {
				return
			}
			f.report(name, f.reg.OnToggle(name, active))
		})
		active, _ := current.(bool)
		check.SetChecked(active)
		f.checks[name] = check
		object = check
	case model.FieldKindChoice:
		sel := widget.NewSelect(field.Options, func(option string) {
			if f.updating {
				return
			}
			f.report(name, f.reg.OnSelect(name, option))
		})
		option, _ := current.(string)
		sel.SetSelected(option)
		f.selects[name] = sel
		object = sel
	case model.FieldKindNumeric:
		entry := widget.NewEntry()
		entry.OnChanged = func(text string) {
			if f.updating {
				return
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				current, _ := f.reg.Value(name)
				f.status.SetText(fmt.Sprintf("%s must be a number (keeping %s)", field.DisplayLabel(), formatValue(current)))
				return
			}
			f.report(name, f.reg.OnNumericChange(name, value))
		}
		entry.SetText(formatValue(current))
		f.entries[name] = entry
		object = entry
	default:
		entry := widget.NewEntry()
		entry.OnChanged = func(text string) {
			if f.updating {
				return
			}
			f.report(name, f.reg.OnEdit(name, text))
		}
		entry.SetText(formatValue(current))
		f.entries[name] = entry
		object = entry
	}

	if !f.reg.Editable(name) {
		f.SetEditable(name, false)
	}
	return object
}

func (f *Form) report(name string, err error) {
	if err != nil {
		f.logger.Warn("field update rejected", zap.String("field", name), zap.Error(err))
	}
}

func (f *Form) showValidity(v binding.Validity) {
	if v.Valid {
		f.status.SetText("")
		return
	}
	labels := make([]string, 0, len(v.Blank))
	for _, name := range v.Blank {
		if field, ok := f.reg.Field(name); ok {
			labels = append(labels, field.DisplayLabel())
		}
	}
	f.status.SetText("Required: " + strings.Join(labels, ", "))
}

func label(field model.Field) string {
	if field.Required {
		return field.DisplayLabel() + " *"
	}
	return field.DisplayLabel()
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
