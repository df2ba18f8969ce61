// Package render turns a canvas document into its output artifacts: the
// self-contained interactive HTML document and an optional static SVG
// snapshot.
//
// The assembler drives the geometry engine once for the whole document,
// renders every node through the kind dispatch in node.go, and splices
// the fragments plus the serialized viewer data into the fixed shell.
// Individual node or edge failures degrade that node or edge and are
// collected as warnings; only document-level failures abort.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/canvaskit/canvashtml/pkg/assets"
	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
	"github.com/canvaskit/canvashtml/pkg/geometry"
)

// Warning records a non-fatal degradation encountered during assembly.
type Warning struct {
	Code    errors.Code
	Message string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithResolver sets the asset resolver used for file nodes.
func WithResolver(r *assets.Resolver) Option {
	return func(a *Assembler) { a.resolver = r }
}

// WithLogger sets the logger warnings are reported to as they occur.
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// Assembler converts one document into output artifacts. It is scoped to
// a single conversion: warnings accumulate across Assemble calls and the
// resolver memoizes per-reference results.
type Assembler struct {
	resolver *assets.Resolver
	logger   *log.Logger
	warnings []Warning
	seen     map[string]struct{}
}

// NewAssembler creates an assembler. Without WithResolver, file nodes
// resolve against the process working directory.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{seen: make(map[string]struct{})}
	for _, opt := range opts {
		opt(a)
	}
	if a.resolver == nil {
		a.resolver = assets.NewResolver(".", "")
	}
	return a
}

// Warnings returns the degradations collected so far, in occurrence order.
func (a *Assembler) Warnings() []Warning {
	return a.warnings
}

// warn records a degradation. An identical code+message pair is
// reported once, so assembling multiple artifacts from the same
// document does not repeat its warnings.
func (a *Assembler) warn(code errors.Code, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	key := string(code) + ": " + msg
	if _, ok := a.seen[key]; ok {
		return
	}
	a.seen[key] = struct{}{}
	a.warnings = append(a.warnings, Warning{Code: code, Message: msg})
	if a.logger != nil {
		a.logger.Warn(msg, "code", string(code))
	}
}

// warnDangling names the first missing endpoint of a dangling edge.
// Every artifact reports dangling edges through this one message shape.
func (a *Assembler) warnDangling(e canvas.Edge, byID map[string]*canvas.Node) {
	missing := e.ToNode
	if _, ok := byID[e.FromNode]; !ok {
		missing = e.FromNode
	}
	a.warn(errors.ErrCodeDanglingEdge, "edge %s->%s references unknown node %s", e.FromNode, e.ToNode, missing)
}

// viewerNode is the per-node payload the embedded viewer consumes,
// in output-normalized coordinates.
type viewerNode struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AssembleHTML produces the self-contained interactive HTML document.
//
// It computes the bounding box once, renders every node in input order
// at normalized coordinates, serializes the viewer data (nodes
// normalized, edges passed through unchanged) and splices everything
// into the fixed shell. Dangling edges are reported as warnings; the
// edge list itself is copied through for the viewer, which skips them.
func (a *Assembler) AssembleHTML(doc *canvas.Document) ([]byte, error) {
	bounds := geometry.ComputeBounds(doc.Nodes)
	byID := doc.ByID()

	var nodesHTML bytes.Buffer
	for _, n := range doc.Nodes {
		nodesHTML.WriteString(a.renderNode(n, bounds.Normalize(n)))
	}

	viewerNodes := make([]viewerNode, len(doc.Nodes))
	for i, n := range doc.Nodes {
		p := bounds.Normalize(n)
		viewerNodes[i] = viewerNode{ID: n.ID, X: p.X, Y: p.Y, Width: n.Width, Height: n.Height}
	}

	for _, e := range doc.Edges {
		if _, okFrom := byID[e.FromNode]; okFrom {
			if _, okTo := byID[e.ToNode]; okTo {
				continue
			}
		}
		a.warnDangling(e, byID)
	}

	nodesData, err := json.Marshal(viewerNodes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize nodes")
	}

	edgesData, err := doc.EdgesJSON()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize edges")
	}

	var buf bytes.Buffer
	data := shellData{
		Width:     px(bounds.Width),
		Height:    px(bounds.Height),
		NodesHTML: nodesHTML.String(),
		NodesData: string(nodesData),
		EdgesData: string(edgesData),
	}
	if err := shellTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "execute shell template")
	}

	return buf.Bytes(), nil
}
