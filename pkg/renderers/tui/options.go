package tui

import "go.uber.org/zap"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits YAML, suitable as a presets file.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits one "path: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a format name from a flag.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	switch format := OutputFormat(raw); format {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatPrettyText:
		return format, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Theme captures optional prefixes the renderer applies to messages.
type Theme struct {
	TitlePrefix string
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
