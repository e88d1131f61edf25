// Package binding implements the field binding registry shared by wizard
// pages. A Registry owns a table of named field descriptors and a reference
// to the caller's settings.Record; presentation layers report edits through
// OnEdit, OnNumericChange, OnToggle and OnSelect, each addressed by field name.
//
// Required-field tracking covers text fields only. The blank-required set is
// maintained incrementally, so IsValid is O(1), and observers registered with
// WithObserver are told about the new validity after every mutation.
//
// Numeric fields may be grouped behind a boolean toggle with
// BindDefaultGroup: while the toggle is active the members are forced to the
// group value and locked.
package binding
