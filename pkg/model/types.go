package model

import (
	"fmt"
	"math"
	"strings"
)

// FieldKind is the fixed kind of a bound field.
type FieldKind string

const (
	FieldKindText    FieldKind = "text"
	FieldKindNumeric FieldKind = "numeric"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindChoice  FieldKind = "choice"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindNumeric, FieldKindBoolean, FieldKindChoice:
		return true
	default:
		return false
	}
}

// ParseFieldKind normalises a kind read from a definition file. An empty value
// resolves to FieldKindText.
func ParseFieldKind(raw string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text", "string":
		return FieldKindText, nil
	case "numeric", "number", "integer":
		return FieldKindNumeric, nil
	case "boolean", "bool", "toggle":
		return FieldKindBoolean, nil
	case "choice", "select", "enum":
		return FieldKindChoice, nil
	default:
		return "", fmt.Errorf("model: unknown field kind %q", raw)
	}
}

// NumericRange bounds a numeric field. Step and Digits are presentation hints;
// the registry enforces Min, Max and Integer.
type NumericRange struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step,omitempty" yaml:"step,omitempty"`
	Digits  int     `json:"digits,omitempty" yaml:"digits,omitempty"`
	Integer bool    `json:"integer,omitempty" yaml:"integer,omitempty"`
}

// Bounded reports whether Min and Max apply. A zero range (Min == Max == 0)
// is unbounded.
func (r *NumericRange) Bounded() bool {
	return r != nil && (r.Min != 0 || r.Max != 0)
}

// Clamp limits value to the range and drops the fraction of integer fields.
func (r *NumericRange) Clamp(value float64) float64 {
	if r == nil {
		return value
	}
	if r.Integer {
		value = math.Trunc(value)
	}
	if r.Bounded() {
		if value < r.Min {
			return r.Min
		}
		if value > r.Max {
			return r.Max
		}
	}
	return value
}

// Field describes one named, user-editable unit of settings data.
type Field struct {
	Name     string        `json:"name" yaml:"name"`
	Kind     FieldKind     `json:"kind" yaml:"kind"`
	Required bool          `json:"required" yaml:"required"`
	Label    string        `json:"label,omitempty" yaml:"label,omitempty"`
	Help     string        `json:"help,omitempty" yaml:"help,omitempty"`
	Default  any           `json:"default,omitempty" yaml:"default,omitempty"`
	Options  []string      `json:"options,omitempty" yaml:"options,omitempty"`
	Range    *NumericRange `json:"range,omitempty" yaml:"range,omitempty"`
}

// DisplayLabel returns the label presentation layers should show.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// ZeroValue returns the empty value for the field's kind.
func (f Field) ZeroValue() any {
	switch f.Kind {
	case FieldKindNumeric:
		return float64(0)
	case FieldKindBoolean:
		return false
	default:
		return ""
	}
}

// HasOption reports whether option is one of the field's choices.
func (f Field) HasOption(option string) bool {
	for _, candidate := range f.Options {
		if candidate == option {
			return true
		}
	}
	return false
}

// DefaultGroup ties a set of numeric fields to a boolean toggle. While the
// toggle is active every member is forced to Value and is not editable.
type DefaultGroup struct {
	Toggle string   `json:"toggle" yaml:"toggle"`
	Fields []string `json:"fields" yaml:"fields"`
	Value  float64  `json:"value" yaml:"value"`
}

// Page is the declaration of one wizard page: the fields it binds and the
// record section they live under.
type Page struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle      string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Section       string         `json:"section,omitempty" yaml:"section,omitempty"`
	Fields        []Field        `json:"fields" yaml:"fields"`
	DefaultGroups []DefaultGroup `json:"defaultGroups,omitempty" yaml:"defaultGroups,omitempty"`
}

// Field returns the declared field with the given name.
func (p Page) Field(name string) (Field, bool) {
	for _, field := range p.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// EntryType lists the fields of a bibliography entry type.
type EntryType struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Required    []string `json:"required" yaml:"required"`
	Optional    []string `json:"optional,omitempty" yaml:"optional,omitempty"`
}
