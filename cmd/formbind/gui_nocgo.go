//go:build !cgo

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newGUICmd(*cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the pages in a window (requires a cgo build)",
		RunE: func(*cobra.Command, []string) error {
			return errors.New("gui: this binary was built without cgo")
		},
	}
}
