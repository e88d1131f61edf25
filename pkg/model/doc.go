// Package model defines the declarations consumed by the binding registry and
// the presentation layers. A Page lists its Fields in display order and may
// group numeric fields behind a "use default values" toggle (DefaultGroup).
// Kinds are fixed at declaration: text fields take part in required-field
// tracking, numeric, boolean and choice fields never do because their widgets
// always hold a value. Definitions are usually loaded from YAML by pkg/pagedef.
package model
