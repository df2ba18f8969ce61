package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canvaskit/canvashtml/pkg/assets"
	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
	"github.com/canvaskit/canvashtml/pkg/render"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output  string   // output file path (or base path for multiple formats)
	rootDir string   // root directory for asset resolution
	formats []string // output formats: "html", "svg"
}

// convertCommand creates the convert command.
// With no file argument, an interactive picker offers the .canvas files
// found in the current directory.
func (c *CLI) convertCommand() *cobra.Command {
	var formatsStr string
	opts := convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert [file.canvas]",
		Short: "Convert a JSON Canvas file to a self-contained HTML page",
		Long: `Convert a JSON Canvas file to a self-contained HTML page.

The generated page embeds referenced images as data URLs and includes an
interactive viewer with pan, zoom, and connection rendering. Missing assets
and dangling edges degrade gracefully and are reported as warnings.

Asset references are resolved relative to --root-dir (the vault root),
falling back to the canvas file's own directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputOrPick(args)
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runConvert(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.rootDir, "root-dir", "r", "", "root directory for asset resolution (default: canvas file directory)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg (comma-separated)")

	return cmd
}

// inputOrPick returns the input path from args, or runs the interactive
// picker when no argument was given.
func inputOrPick(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return pickCanvasFile(".")
}

// runConvert loads the canvas, converts it to the requested formats, and
// writes the output files.
func runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := canvas.ImportFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded canvas: %d nodes, %d edges", doc.NodeCount(), doc.EdgeCount())

	for _, id := range doc.GeneratedIDs() {
		logger.Warn("node missing id, generated one", "id", id)
	}

	rootDir, err := resolveRootDir(opts.rootDir, doc.Dir)
	if err != nil {
		return err
	}

	asm := render.NewAssembler(
		render.WithResolver(assets.NewResolver(doc.Dir, rootDir)),
		render.WithLogger(logger),
	)

	for _, format := range opts.formats {
		data, err := assemble(asm, doc, format)
		if err != nil {
			return err
		}

		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Converted %s", input))
	printStats(doc.NodeCount(), doc.EdgeCount(), len(asm.Warnings()))
	for _, w := range asm.Warnings() {
		printWarning("%s", w.Message)
	}
	printNextStep("Preview in a browser", "canvashtml serve "+input)
	return nil
}

// assemble dispatches to the renderer for the given format.
func assemble(asm *render.Assembler, doc *canvas.Document, format string) ([]byte, error) {
	switch format {
	case "html":
		return asm.AssembleHTML(doc)
	case "svg":
		return asm.AssembleSVG(doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

// resolveRootDir validates the asset root. An empty flag falls back to the
// canvas file's directory.
func resolveRootDir(flagValue, canvasDir string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = canvasDir
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "root directory %s does not exist", dir)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidPath, "root directory %s is not a directory", dir)
	}
	return dir, nil
}

// outputPath derives the output file path for a format.
// With an explicit output and a single format, the output is used as-is.
// Otherwise known format extensions are stripped and the format appended,
// so "convert -f html,svg board.canvas" yields board.html and board.svg.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		ext := filepath.Ext(base)
		if validFormats[strings.TrimPrefix(ext, ".")] {
			base = strings.TrimSuffix(base, ext)
		}
	}
	return base + "." + format
}

// writeOutput writes data to path, creating parent directories as needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeOutputUnwritable, err, "create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputUnwritable, err, "write %s", path)
	}
	return nil
}
