package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/anrid/commune-stats/pkg/config"
	"github.com/anrid/commune-stats/pkg/stats"
)

var (
	verbose bool
	url     string
	out     string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "create [workbook]",
	Short: "Convert a workbook of provincial statistics into a JSON document",
	Long: `Reads a hand-curated XLS or XLSX workbook (one sheet per table, one
section per block of rows) from a local path or from --url, and writes the
document as JSON for the show command.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: create,
}

func create(cmd *cobra.Command, args []string) error {
	var (
		f   *stats.File
		err error
	)

	switch {
	case url != "":
		logger.Info("Downloading workbook", zap.String("url", url))
		f, err = stats.Download(url)
	case len(args) == 1:
		f, err = stats.OpenFile(args[0])
	default:
		return fmt.Errorf("a workbook path or --url is required")
	}
	if err != nil {
		return err
	}

	doc, err := f.Document()
	if err != nil {
		return err
	}

	if out == "" {
		cfg, err := config.Load(config.Path())
		if err != nil {
			return err
		}
		out = cfg.Document
	}

	if err := doc.Save(out); err != nil {
		return err
	}

	logger.Info("Document saved", zap.String("path", out), zap.Int("tables", len(doc.Tables)))
	doc.Info(os.Stdout)

	return nil
}

func main() {
	config.LoadEnv(".env.local", ".env")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.Flags().StringVar(&url, "url", "", "Download the workbook from this URL")
	rootCmd.Flags().StringVarP(&out, "out", "o", "", "Output JSON document (default from config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
