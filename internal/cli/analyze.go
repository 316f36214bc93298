package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/docuai/internal/agent"
	"github.com/spf13/cobra"
)

var analyzeOutput string

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|directory|url>",
	Short: "Analyze code for smells, bugs and improvements",
	Long: `Analyze code quality with the configured LLM and write a Markdown report.

A single file is reviewed on its own. A directory or repository URL is
reviewed as a whole, with every supported file included in one request.

Examples:
  # Review one file (writes app_analysis.md)
  docuai analyze app.js

  # Review a repository
  docuai analyze https://github.com/user/project -o review.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	return r.analyze(cmd.Context(), args[0], analyzeOutput)
}

func (r *runner) analyze(ctx context.Context, target, output string) error {
	a, err := agent.New(r.llm)
	if err != nil {
		return err
	}
	defer a.Close()

	single, err := isSingleFile(target)
	if err != nil {
		return err
	}
	if single {
		return r.analyzeFile(ctx, a, target, output)
	}

	ws, err := r.openWorkspace(ctx, target)
	if err != nil {
		return err
	}
	defer ws.cleanup()

	files, err := r.newIndexer(ws.dir).Discover(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.fail("No supported files found.")
		return nil
	}

	r.success("Analyzing %d files...", len(files))
	analysis, err := a.AnalyzeRepo(ctx, files)
	if err != nil {
		return fmt.Errorf("failed to analyze repository: %w", err)
	}

	outPath := output
	if outPath == "" {
		outPath = r.outputPath(ws.name + "_analysis.md")
	}
	if err := writeOutput(outPath, "# Code Analysis Report\n\n"+analysis); err != nil {
		return err
	}
	r.info("✓ Analysis saved to %s", outPath)
	return nil
}

func (r *runner) analyzeFile(ctx context.Context, a *agent.Agent, path, output string) error {
	r.success("Analyzing %s...", path)
	analysis, err := a.AnalyzeCode(ctx, path)
	if err != nil {
		return fmt.Errorf("error analyzing %s: %w", path, err)
	}

	outPath := output
	if outPath == "" {
		outPath = r.outputPath(fileStem(path) + "_analysis.md")
	}
	header := fmt.Sprintf("# Code Analysis: %s\n\n", filepath.Base(path))
	if err := writeOutput(outPath, header+analysis); err != nil {
		return err
	}
	r.info("✓ Analysis saved to %s", outPath)
	return nil
}
