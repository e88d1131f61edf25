package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/pagedef"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
	"github.com/goliatone/go-formbind/pkg/wizard"
)

const (
	fieldsPageID  = "bibtex-fields"
	articlePageID = "article-settings"
)

func newBibtexCmd(opts *cliOptions) *cobra.Command {
	var entryType string
	cmd := &cobra.Command{
		Use:   "bibtex",
		Short: "Fill the fields of one BibTeX entry",
		Long: `Prompts for the identifier and the fields of the chosen entry type.
Required fields are asked again until they are filled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStore()
			if err != nil {
				return err
			}
			record := settings.New()
			page, err := buildFieldsPage(store, record, entryType, opts.logger)
			if err != nil {
				return err
			}
			return opts.runPages(cmd, record, page.EntryType().Name, page)
		},
	}
	cmd.Flags().StringVar(&entryType, "entry-type", "article", "BibTeX entry type")
	return cmd
}

func newArticleCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "article",
		Short: "Choose page format, font size and margins for an article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStore()
			if err != nil {
				return err
			}
			record := settings.New()
			page, err := buildArticlePage(store, record, opts.logger)
			if err != nil {
				return err
			}
			return opts.runPages(cmd, record, "article", page)
		},
	}
}

func newPagesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the declared pages and BibTeX entry types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.loadStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Pages:")
			for _, id := range store.PageIDs() {
				page, _ := store.Page(id)
				fmt.Fprintf(out, "  %-20s %d fields, section %q\n", id, len(page.Fields), page.Section)
			}
			fmt.Fprintln(out, "Entry types:")
			for _, name := range store.EntryTypeNames() {
				entry, _ := store.EntryType(name)
				fmt.Fprintf(out, "  %-20s %s\n", name, entry.Description)
			}
			return nil
		},
	}
}

func (o *cliOptions) runPages(cmd *cobra.Command, record settings.Record, title string, list ...pages.Page) error {
	ctrl, err := wizard.New(list, wizard.WithLogger(o.logger))
	if err != nil {
		return err
	}
	presets, err := o.loadPresets()
	if err != nil {
		return err
	}
	if presets != nil {
		ctrl.LoadPresets(presets)
	}

	renderer, err := o.renderer()
	if err != nil {
		return err
	}
	if err := renderer.Run(cmd.Context(), ctrl); err != nil {
		return err
	}
	return o.writeRecord(cmd.OutOrStdout(), renderer, record, title)
}

func buildFieldsPage(store *pagedef.Store, record settings.Record, entryType string, logger *zap.Logger) (*pages.FieldsEntryPage, error) {
	def, ok := store.Page(fieldsPageID)
	if !ok {
		return nil, fmt.Errorf("page %q is not declared", fieldsPageID)
	}
	entry, ok := store.EntryType(entryType)
	if !ok {
		return nil, fmt.Errorf("unknown entry type %q (known: %s)", entryType, strings.Join(store.EntryTypeNames(), ", "))
	}
	return pages.NewFieldsEntryPage(record, def, entry, binding.WithLogger(logger))
}

func buildArticlePage(store *pagedef.Store, record settings.Record, logger *zap.Logger) (*pages.ArticleSettingsPage, error) {
	def, ok := store.Page(articlePageID)
	if !ok {
		return nil, fmt.Errorf("page %q is not declared", articlePageID)
	}
	return pages.NewArticleSettingsPage(record, def, binding.WithLogger(logger))
}
