// Package canvas defines the JSON Canvas document model.
//
// A canvas is a flat collection of spatially positioned nodes and the
// directional connections between them. Nodes carry a kind tag (text,
// file, link, group) with kind-specific payload fields; edges reference
// nodes by id and may name the side they attach to.
//
// The model is read-only after decoding: rendering works on translated
// copies of coordinates, never mutating the document in place.
package canvas

import "encoding/json"

// NodeKind identifies the payload a node carries.
// The set is closed; renderers dispatch exhaustively over it and treat
// anything else as an unknown node that produces no output.
type NodeKind string

// Node kinds.
const (
	KindText  NodeKind = "text"
	KindFile  NodeKind = "file"
	KindLink  NodeKind = "link"
	KindGroup NodeKind = "group"
)

// Side names the edge of a node box a connection attaches to.
type Side string

// Connection sides.
const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

// Edge end decorations.
const (
	EndArrow = "arrow"
	EndNone  = "none"
)

// Node is a single positioned element on the canvas.
//
// X/Y are the top-left corner in canvas coordinates, which may be
// negative; Width and Height are always positive. Exactly one of the
// payload fields (Text, File, URL, Label) is meaningful, selected by Kind.
type Node struct {
	ID     string   `json:"id"`
	Kind   NodeKind `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Color  string   `json:"color,omitempty"`

	Text  string `json:"text,omitempty"`  // kind: text
	File  string `json:"file,omitempty"`  // kind: file
	URL   string `json:"url,omitempty"`   // kind: link
	Label string `json:"label,omitempty"` // kind: group
}

// Edge is a directional connection between two nodes.
//
// FromNode and ToNode are weak references: an edge naming a missing node
// id is tolerated and dropped at render time. Empty FromSide, ToSide and
// ToEnd default to right, left and arrow respectively.
type Edge struct {
	ID       string `json:"id,omitempty"`
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	FromSide Side   `json:"fromSide,omitempty"`
	ToSide   Side   `json:"toSide,omitempty"`
	ToEnd    string `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Document is a parsed canvas file.
//
// Nodes and Edges preserve input order; the final artifact emits them in
// the same order. Path and Dir locate the source file on disk and seed
// asset resolution; they are empty for documents decoded from a stream.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	Path string `json:"-"` // source file, if read from disk
	Dir  string `json:"-"` // directory containing the source file

	generatedIDs []string
	rawEdges     []json.RawMessage
}

// EdgesJSON serializes the edge list for embedding into the output.
// Documents decoded from JSON reproduce the input edge records byte for
// byte, including keys beyond the modeled fields (ids, style attributes
// and whatever else the authoring tool wrote). Documents constructed in
// code marshal the typed edges instead.
func (d *Document) EdgesJSON() ([]byte, error) {
	if d.rawEdges != nil {
		return json.Marshal(d.rawEdges)
	}
	edges := d.Edges
	if edges == nil {
		edges = []Edge{}
	}
	return json.Marshal(edges)
}

// ByID returns an index of nodes keyed by id. When a document carries
// duplicate ids the first occurrence wins, matching the render order.
func (d *Document) ByID() map[string]*Node {
	idx := make(map[string]*Node, len(d.Nodes))
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = n
		}
	}
	return idx
}

// GeneratedIDs lists node ids that were invented during decoding because
// the input omitted them. Callers surface these as warnings.
func (d *Document) GeneratedIDs() []string {
	return d.generatedIDs
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of edges.
func (d *Document) EdgeCount() int { return len(d.Edges) }
