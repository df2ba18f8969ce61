// Package nodelink renders a structural overview of a canvas as a
// node-link diagram via Graphviz. Unlike the HTML artifact, the overview
// discards the author's spatial placement and lets Graphviz lay out the
// connection structure, which is useful for auditing large canvases.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/canvaskit/canvashtml/pkg/canvas"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes node kind and geometry in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a canvas document to Graphviz DOT format.
// Dangling edges are omitted; group nodes are drawn dashed to mirror
// their translucent-container role in the HTML artifact.
func ToDOT(doc *canvas.Document, opts Options) string {
	byID := doc.ByID()

	var buf bytes.Buffer
	buf.WriteString("digraph canvas {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		if _, ok := byID[e.FromNode]; !ok {
			continue
		}
		if _, ok := byID[e.ToNode]; !ok {
			continue
		}
		arrow := ""
		if e.ToEnd == canvas.EndNone {
			arrow = " [arrowhead=none]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.FromNode, e.ToNode, arrow)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// displayLabel picks a human-readable label per node kind.
func displayLabel(n canvas.Node) string {
	switch n.Kind {
	case canvas.KindText:
		if i := strings.IndexByte(n.Text, '\n'); i >= 0 {
			return n.Text[:i]
		}
		if n.Text != "" {
			return n.Text
		}
	case canvas.KindFile:
		if n.File != "" {
			return filepath.Base(n.File)
		}
	case canvas.KindLink:
		if n.URL != "" {
			return n.URL
		}
	case canvas.KindGroup:
		if n.Label != "" {
			return n.Label
		}
	}
	return n.ID
}

func fmtLabel(n canvas.Node, detailed bool) string {
	label := displayLabel(n)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nkind: %s\nat: (%g, %g) %gx%g", label, n.Kind, n.X, n.Y, n.Width, n.Height)
}

func fmtAttrs(n canvas.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Kind == canvas.KindGroup {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
