// Package pagedef loads wizard page declarations and bibliography entry types
// from JSON or YAML files. The bundled definitions (EmbeddedFS) describe the
// article settings page and the bibliography fields page; callers may point
// LoadFS at their own directory to add pages or entry types.
//
// A definition document has two top-level maps:
//
//	pages:
//	  article-settings:
//	    section: article
//	    fields: [...]
//	    defaultGroups: [...]
//	entryTypes:
//	  article:
//	    required: [author, title, journal, year]
//	    optional: [volume, number, pages, month, note]
package pagedef
