package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"
)

// Decode parses a presets document. JSON (with or without comments) is tried
// first, then YAML. Numbers are normalised to float64 so numeric fields see a
// single type regardless of the source format.
func Decode(data []byte, source string) (Record, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return New(), nil
	}

	var out map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &out); err == nil {
		return normalise(out), nil
	}

	if err := yaml.Unmarshal(data, &out); err == nil {
		return normalise(out), nil
	}

	return nil, fmt.Errorf("settings: parse %s: invalid JSON or YAML", source)
}

// LoadFile reads and decodes a presets file.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return Decode(data, filepath.Base(path))
}

func normalise(in map[string]any) Record {
	out := make(Record, len(in))
	for k, v := range in {
		out[k] = normaliseValue(v)
	}
	return out
}

func normaliseValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return map[string]any(normalise(typed))
	case map[any]any:
		converted, _ := asMap(typed)
		return map[string]any(normalise(converted))
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normaliseValue(v)
		}
		return out
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case float32:
		return float64(typed)
	default:
		return typed
	}
}
