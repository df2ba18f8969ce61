package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
	"github.com/canvaskit/canvashtml/pkg/geometry"
)

const svgStyle = `
    .node-box { fill: #282c34; stroke: #3e4451; }
    .node-group-box { fill: rgba(40, 44, 52, 0.5); stroke: #3e4451; }
    .node-label { fill: #abb2bf; font-family: sans-serif; font-size: 14px; }
    .node-link-label { fill: #61afef; }
    .edge { fill: none; stroke: #abb2bf; stroke-width: 2; }
    .edge-arrow { fill: #abb2bf; }`

// AssembleSVG produces a static snapshot of the canvas: node boxes and
// connector curves without the interactive viewer. File nodes embed the
// same data URLs as the HTML artifact, so the snapshot stays
// self-contained. Dangling edges are skipped with a warning.
func (a *Assembler) AssembleSVG(doc *canvas.Document) ([]byte, error) {
	bounds := geometry.ComputeBounds(doc.Nodes)
	byID := doc.ByID()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		px(bounds.Width), px(bounds.Height), px(bounds.Width), px(bounds.Height))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	buf.WriteString(`  <defs>
    <marker id="arrowhead" markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto">
      <polygon points="0 0, 10 3, 0 6" class="edge-arrow" />
    </marker>
  </defs>
`)

	for _, n := range doc.Nodes {
		a.renderSVGNode(&buf, n, bounds)
	}

	for _, e := range doc.Edges {
		c, ok := geometry.CurveFor(e, byID, bounds)
		if !ok {
			a.warnDangling(e, byID)
			continue
		}
		marker := ""
		if c.Arrow {
			marker = ` marker-end="url(#arrowhead)"`
		}
		fmt.Fprintf(&buf, "  <path d=%q class=\"edge\"%s />\n", c.Path(), marker)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (a *Assembler) renderSVGNode(buf *bytes.Buffer, n canvas.Node, bounds geometry.BoundingBox) {
	p := bounds.Normalize(n)
	stroke := ""
	if c := ResolveColor(n.Color); c != "" {
		stroke = fmt.Sprintf(` style="stroke: %s"`, c)
	}

	boxClass := "node-box"
	if n.Kind == canvas.KindGroup {
		boxClass = "node-group-box"
	}
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="8" class="%s"%s />`+"\n",
		px(p.X), px(p.Y), px(n.Width), px(n.Height), boxClass, stroke)

	switch n.Kind {
	case canvas.KindText:
		svgLabel(buf, p, n, firstLine(n.Text), "node-label")
	case canvas.KindFile:
		asset, err := a.resolver.Resolve(n.File)
		if err != nil {
			a.warn(errors.GetCode(err), "node %s: %s", n.ID, errors.UserMessage(err))
			svgLabel(buf, p, n, "File not found: "+n.File, "node-label")
			return
		}
		fmt.Fprintf(buf, `  <image x="%s" y="%s" width="%s" height="%s" href="%s" preserveAspectRatio="xMidYMid slice" />`+"\n",
			px(p.X), px(p.Y), px(n.Width), px(n.Height), asset.DataURL)
	case canvas.KindLink:
		svgLabel(buf, p, n, n.URL, "node-label node-link-label")
	case canvas.KindGroup:
		svgLabel(buf, p, n, n.Label, "node-label")
	}
}

// svgLabel centers a single-line label inside the node box.
func svgLabel(buf *bytes.Buffer, p geometry.Point, n canvas.Node, text, class string) {
	if text == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" class="%s">%s</text>`+"\n",
		px(p.X+n.Width/2), px(p.Y+n.Height/2), class, html.EscapeString(text))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
