package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formbind/pkg/pagedef"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/settings"
)

// cliOptions holds the persistent flags shared by every subcommand.
type cliOptions struct {
	defsDir     string
	presetsPath string
	format      string
	output      string
	verbose     bool

	logger *zap.Logger
	// driver replaces the survey prompts when set.
	driver tui.PromptDriver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cliOptions{logger: zap.NewNop()})
}

func newRootCmdWith(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "formbind",
		Short: "Fill BibTeX entries and article settings through bound form pages",
		Long: `formbind runs wizard pages whose fields are bound to a settings record.

Pages are declared in YAML. The built-in definitions cover a BibTeX entry page
and an article settings page; --defs points at a directory of replacements.
Values can be pre-filled from a presets file (JSON, JSON with comments, or YAML)
and the collected record is written as JSON, YAML or plain text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.defsDir, "defs", "", "directory of page definition files (built-in definitions if empty)")
	flags.StringVar(&opts.presetsPath, "presets", "", "presets file used to pre-fill the pages")
	flags.StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "output format: json, yaml or pretty")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newBibtexCmd(opts),
		newArticleCmd(opts),
		newPagesCmd(opts),
		newGUICmd(opts),
	)
	return root
}

func (o *cliOptions) loadStore() (*pagedef.Store, error) {
	if strings.TrimSpace(o.defsDir) == "" {
		return pagedef.LoadDefaults()
	}
	return pagedef.LoadFS(os.DirFS(o.defsDir))
}

func (o *cliOptions) loadPresets() (settings.Record, error) {
	if strings.TrimSpace(o.presetsPath) == "" {
		return nil, nil
	}
	presets, err := settings.LoadFile(o.presetsPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("presets loaded", zap.String("path", o.presetsPath), zap.Strings("keys", presets.Keys()))
	return presets, nil
}

func (o *cliOptions) renderer() (*tui.Renderer, error) {
	format, err := tui.ParseOutputFormat(o.format)
	if err != nil {
		return nil, fmt.Errorf("--format %q: %w", o.format, err)
	}
	return tui.New(
		tui.WithPromptDriver(o.driver),
		tui.WithOutputFormat(format),
		tui.WithLogger(o.logger),
		tui.WithTheme(tui.Theme{TitlePrefix: "== ", ErrorPrefix: "! "}),
	), nil
}

func (o *cliOptions) writeRecord(stdout io.Writer, r *tui.Renderer, record settings.Record, title string) error {
	data, err := r.Serialize(record, title)
	if err != nil {
		return err
	}
	if o.output == "" {
		_, err = fmt.Fprintln(stdout, strings.TrimRight(string(data), "\n"))
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	o.logger.Info("record written", zap.String("path", o.output))
	return nil
}
