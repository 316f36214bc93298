package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mvp-joe/docuai/internal/config"
	"github.com/mvp-joe/docuai/internal/indexer"
	"github.com/mvp-joe/docuai/internal/metadata"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	parseFormat   string
	parseValidate bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file|directory>",
	Short: "Print extracted structure without calling an LLM",
	Long: `Parse prints the classes, methods, functions and imports extracted from a
source file, or from every supported file under a directory.

Examples:
  docuai parse app.py
  docuai parse ./src --format yaml
  docuai parse web/index.ts --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "Output format: json or yaml")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Check line spans and source slices of every record")
}

// parseReport is the parse output for a directory.
type parseReport struct {
	Files   []*metadata.FileMetadata `json:"files" yaml:"files"`
	Skipped []skippedEntry           `json:"skipped" yaml:"skipped"`
	Stats   indexer.ProcessingStats  `json:"stats" yaml:"stats"`
}

type skippedEntry struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return executeParse(cmd.Context(), cfg, cmd.OutOrStdout(), args[0], parseFormat, parseValidate)
}

func executeParse(ctx context.Context, cfg *config.Config, out io.Writer, target, format string, validate bool) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (expected json or yaml)", format)
	}

	single, err := isSingleFile(target)
	if err != nil {
		return err
	}

	var payload interface{}
	var records []*metadata.FileMetadata
	if single {
		fm, err := indexer.NewParser().ParseFile(ctx, target)
		if err != nil {
			return err
		}
		payload = fm
		records = []*metadata.FileMetadata{fm}
	} else {
		result, err := indexer.New(cfg.ToIndexerConfig(target), nil).Index(ctx)
		if err != nil {
			return err
		}
		report := &parseReport{
			Files:   result.Files,
			Skipped: make([]skippedEntry, 0, len(result.Skipped)),
			Stats:   result.Stats,
		}
		for _, s := range result.Skipped {
			report.Skipped = append(report.Skipped, skippedEntry{Path: s.Path, Reason: s.Reason()})
		}
		payload = report
		records = result.Files
	}

	if validate {
		for _, fm := range records {
			if err := fm.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
	}

	return writeFormatted(out, payload, format)
}

func writeFormatted(out io.Writer, v interface{}, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
