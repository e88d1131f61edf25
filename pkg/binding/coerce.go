package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/model"
)

// fallbackValue is the declared default coerced to the field kind, or the
// kind's zero value.
func fallbackValue(field model.Field) any {
	if field.Default != nil {
		if value, ok := coerce(field, field.Default); ok {
			return value
		}
	}
	if field.Kind == model.FieldKindChoice && len(field.Options) > 0 {
		return field.Options[0]
	}
	return field.ZeroValue()
}

// coerce converts a raw record or preset value to the field's value type.
func coerce(field model.Field, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}
	switch field.Kind {
	case model.FieldKindNumeric:
		value, ok := toFloat(raw)
		if !ok {
			return nil, false
		}
		return field.Range.Clamp(value), true
	case model.FieldKindBoolean:
		return toBool(raw)
	case model.FieldKindChoice:
		text := fmt.Sprint(raw)
		if len(field.Options) > 0 && !field.HasOption(text) {
			return nil, false
		}
		return text, true
	default:
		if text, ok := raw.(string); ok {
			return text, true
		}
		return fmt.Sprint(raw), true
	}
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(raw any) (any, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return nil, false
	}
}
