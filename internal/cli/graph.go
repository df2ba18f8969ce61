package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
	"github.com/canvaskit/canvashtml/pkg/render/nodelink"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path
	format   string // "svg", "png", or "dot"
	detailed bool   // include kind and geometry in node labels
}

// graphCommand creates the graph command for structural overviews.
// Graphviz computes the layout, so the diagram shows connection structure
// rather than the canvas's spatial arrangement.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph [file.canvas]",
		Short: "Render a node-link overview of the canvas structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputOrPick(args)
			if err != nil {
				return err
			}
			if err := validateGraphFormat(opts.format); err != nil {
				return err
			}
			return runGraph(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include node kind and geometry in labels")

	return cmd
}

// validGraphFormats is the set of supported graph output formats.
var validGraphFormats = map[string]bool{"svg": true, "png": true, "dot": true}

func validateGraphFormat(format string) error {
	if !validGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'dot')", format)
	}
	return nil
}

// runGraph converts the canvas to DOT and renders it via Graphviz.
func runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := canvas.ImportFile(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded canvas: %d nodes, %d edges", doc.NodeCount(), doc.EdgeCount())

	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
		printSuccess("Generated graph overview")
	case "svg", "png":
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
		spinner.Start()
		if opts.format == "svg" {
			data, err = nodelink.RenderSVG(ctx, dot)
		} else {
			data, err = nodelink.RenderPNG(ctx, dot)
		}
		if err != nil {
			if spinner.Cancelled() {
				spinner.Stop()
				return ctx.Err()
			}
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.StopWithSuccess("Generated graph overview")
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "_graph." + opts.format
	}
	if err := writeOutput(path, data); err != nil {
		return err
	}

	printFile(path)
	printStats(doc.NodeCount(), doc.EdgeCount(), 0)
	return nil
}
