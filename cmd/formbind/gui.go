//go:build cgo

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/renderers/fyneview"
	"github.com/goliatone/go-formbind/pkg/settings"
	"github.com/goliatone/go-formbind/pkg/wizard"
)

func newGUICmd(opts *cliOptions) *cobra.Command {
	var entryType string
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Run the BibTeX entry and article settings pages in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStore()
			if err != nil {
				return err
			}
			record := settings.New()
			fieldsPage, err := buildFieldsPage(store, record, entryType, opts.logger)
			if err != nil {
				return err
			}
			articlePage, err := buildArticlePage(store, record, opts.logger)
			if err != nil {
				return err
			}
			ctrl, err := wizard.New([]pages.Page{fieldsPage, articlePage}, wizard.WithLogger(opts.logger))
			if err != nil {
				return err
			}
			presets, err := opts.loadPresets()
			if err != nil {
				return err
			}
			if presets != nil {
				ctrl.LoadPresets(presets)
			}
			renderer, err := opts.renderer()
			if err != nil {
				return err
			}

			a := app.New()
			window := a.NewWindow("formbind")
			finished := false
			view := fyneview.NewWizard(ctrl, opts.logger, func() {
				finished = true
				window.Close()
			})
			window.SetContent(view.Object())
			window.Resize(fyne.NewSize(520, 480))
			if focus := view.Current().Focus(); focus != nil {
				window.Canvas().Focus(focus)
			}
			window.ShowAndRun()

			if !finished {
				return nil
			}
			return opts.writeRecord(cmd.OutOrStdout(), renderer, record, fieldsPage.EntryType().Name)
		},
	}
	cmd.Flags().StringVar(&entryType, "entry-type", "article", "BibTeX entry type")
	return cmd
}
