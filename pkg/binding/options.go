package binding

import "go.uber.org/zap"

// Validity is delivered to observers after every mutation. Field is empty for
// bulk operations (ApplyPresets, ClearAll).
type Validity struct {
	Field string
	Valid bool
	Blank []string
}

// Observer is notified of revalidation. Wizard controllers use it to toggle
// their "continue" action.
type Observer func(Validity)

// View is the presentation seam: a set of renderable field rows. The registry
// pushes values it changed on its own (presets, clear, default groups) and
// editability changes. Edits reported by the view are not echoed back.
type View interface {
	SetValue(name string, value any)
	SetEditable(name string, editable bool)
}

// Option configures a Registry.
type Option func(*Registry)

// WithSection stores every field under record[section]. The record shape is a
// per-registry decision.
func WithSection(section string) Option {
	return func(r *Registry) {
		r.section = section
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver subscribes fn to validity updates.
func WithObserver(fn Observer) Option {
	return func(r *Registry) {
		if fn != nil {
			r.observers = append(r.observers, fn)
		}
	}
}

// WithView attaches the presentation layer.
func WithView(view View) Option {
	return func(r *Registry) {
		r.view = view
	}
}
