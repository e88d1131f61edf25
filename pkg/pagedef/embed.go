package pagedef

import (
	"embed"
	"io/fs"
)

//go:embed defs/*
var embeddedDefs embed.FS

// EmbeddedFS returns the bundled page definitions. Pass it to LoadFS to use
// the default article and bibliography pages.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefs, "defs")
	if err != nil {
		// the embed directive guarantees the subpath exists
		panic(err)
	}
	return sub
}
