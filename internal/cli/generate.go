package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/docuai/internal/agent"
	"github.com/spf13/cobra"
)

var generateOutput string

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <file|directory|url>",
	Short: "Generate documentation for a file, a directory or a git repository",
	Long: `Generate Markdown documentation with the configured LLM.

For a single file the structure is extracted first and sent along with the
source. For a directory or repository URL every supported file is parsed
(files that fail to parse are skipped) and one project document is written.

Examples:
  # Document one file (writes app_docs.md)
  docuai generate app.py

  # Document a directory into a chosen file
  docuai generate ./src -o SRC.md

  # Document a remote repository
  docuai generate https://github.com/user/project`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (or directory for a single input file)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	return r.generate(cmd.Context(), args[0], generateOutput)
}

func (r *runner) generate(ctx context.Context, target, output string) error {
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
		return r.generateFile(ctx, a, target, output)
	}

	ws, err := r.openWorkspace(ctx, target)
	if err != nil {
		return err
	}
	defer ws.cleanup()

	idx := r.newIndexer(ws.dir)
	files, err := idx.Discover(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.fail("No supported files found.")
		return nil
	}

	r.success("Parsing %d files...", len(files))
	result, err := idx.Extract(ctx, files)
	if err != nil {
		return err
	}
	for _, s := range result.Skipped {
		printStyled(r.out, skippedStyle, "Skipping %s: %v", s.Path, s.Err)
	}

	r.success("Generating repository documentation...")
	docs, err := a.GenerateRepoDocs(ctx, result.Files)
	if err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}

	outPath := output
	if outPath == "" {
		outPath = r.outputPath(ws.name + "_documentation.md")
	}
	if err := writeOutput(outPath, docs); err != nil {
		return err
	}
	r.info("✓ Documentation saved to %s", outPath)
	return nil
}

func (r *runner) generateFile(ctx context.Context, a *agent.Agent, path, output string) error {
	parser := r.newParser()

	r.success("Parsing %s...", path)
	fm, err := parser.ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}

	r.success("Generating documentation for %s...", filepath.Base(path))
	docs, err := a.GenerateDocs(ctx, fm)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}

	var outPath string
	switch {
	case output != "" && isDir(output):
		outPath = filepath.Join(output, filepath.Base(path)+".md")
	case output != "":
		outPath = output
	default:
		outPath = r.outputPath(fileStem(path) + "_docs.md")
	}
	if err := writeOutput(outPath, docs); err != nil {
		return err
	}
	r.info("✓ Documentation saved to %s", outPath)
	return nil
}
