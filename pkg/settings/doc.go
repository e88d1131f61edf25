// Package settings holds the shared "current values" record wizard pages write
// into. Paths are dotted: "identifier" for flat records, "article.margin_left"
// for sectioned ones. Decode turns a presets file (JSON, JSON with comments or
// YAML) into a Record; persistence beyond that is left to the caller.
package settings
