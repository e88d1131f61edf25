// Package fyneview presents wizard pages as fyne forms.
//
// Each Form is the binding.View of its page: widget callbacks forward edits to
// the page's registry, and the registry pushes forced values and editability
// back into the widgets.
package fyneview
