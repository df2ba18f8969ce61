// Package geometry computes the spatial layout of a canvas: the global
// bounding box, coordinate normalization into a non-negative frame, and
// the cubic Bezier control points of connector curves.
package geometry

import (
	"fmt"
	"math"

	"github.com/canvaskit/canvashtml/pkg/canvas"
)

const (
	// Padding is the margin added on every side of the bounding box.
	Padding = 50

	// DefaultWidth and DefaultHeight size the frame of an empty canvas.
	DefaultWidth  = 800
	DefaultHeight = 600

	// maxCurveOffset caps how far a control point is pushed from its anchor.
	maxCurveOffset = 100
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64
	Y float64
}

// BoundingBox frames all nodes of a document, padded on every side.
// Normalizing by MinX/MinY maps every node into [0,Width]x[0,Height].
type BoundingBox struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

// ComputeBounds returns the padded bounding box of the given nodes.
// An empty node list yields the fixed default frame (0,0,800,600).
func ComputeBounds(nodes []canvas.Node) BoundingBox {
	if len(nodes) == 0 {
		return BoundingBox{MinX: 0, MinY: 0, Width: DefaultWidth, Height: DefaultHeight}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}

	minX -= Padding
	minY -= Padding
	maxX += Padding
	maxY += Padding

	return BoundingBox{
		MinX:   minX,
		MinY:   minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Normalize translates a node's top-left corner into the canvas-local
// frame. This is the sole coordinate transform applied before emission;
// all downstream geometry works on normalized coordinates.
func (b BoundingBox) Normalize(n canvas.Node) Point {
	return Point{X: n.X - b.MinX, Y: n.Y - b.MinY}
}

// Anchor returns the connection point on the given side of a node, in
// normalized coordinates. An unrecognized or empty side anchors at the
// box center.
func Anchor(n canvas.Node, b BoundingBox, side canvas.Side) Point {
	p := b.Normalize(n)
	w, h := n.Width, n.Height

	switch side {
	case canvas.SideTop:
		return Point{X: p.X + w/2, Y: p.Y}
	case canvas.SideRight:
		return Point{X: p.X + w, Y: p.Y + h/2}
	case canvas.SideBottom:
		return Point{X: p.X + w/2, Y: p.Y + h}
	case canvas.SideLeft:
		return Point{X: p.X, Y: p.Y + h/2}
	default:
		return Point{X: p.X + w/2, Y: p.Y + h/2}
	}
}

// Curve is a cubic Bezier connector from Start through two control
// points to End, all in normalized coordinates.
type Curve struct {
	Start Point
	C1    Point
	C2    Point
	End   Point
	Arrow bool // draw an arrowhead at End
}

// Path renders the curve as an SVG path expression.
func (c Curve) Path() string {
	return fmt.Sprintf("M %g,%g C %g,%g %g,%g %g,%g",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

// CurveFor computes the connector curve for an edge. Endpoint nodes are
// looked up in byID; when either end is unresolvable the edge is skipped
// and ok is false. Empty sides default to right (exit) and left (entry),
// and an empty end decoration defaults to an arrow.
//
// Each control point sits offset units from its anchor along the outward
// normal of its side, with offset = min(distance/2, 100).
func CurveFor(e canvas.Edge, byID map[string]*canvas.Node, b BoundingBox) (Curve, bool) {
	from, ok := byID[e.FromNode]
	if !ok {
		return Curve{}, false
	}
	to, ok := byID[e.ToNode]
	if !ok {
		return Curve{}, false
	}

	fromSide := e.FromSide
	if fromSide == "" {
		fromSide = canvas.SideRight
	}
	toSide := e.ToSide
	if toSide == "" {
		toSide = canvas.SideLeft
	}

	start := Anchor(*from, b, fromSide)
	end := Anchor(*to, b, toSide)

	offset := math.Min(distance(start, end)/2, maxCurveOffset)

	return Curve{
		Start: start,
		C1:    displace(start, fromSide, offset),
		C2:    displace(end, toSide, offset),
		End:   end,
		Arrow: e.ToEnd == "" || e.ToEnd == canvas.EndArrow,
	}, true
}

// displace pushes a point outward from the node box along the normal of
// the given side. Center anchors (unknown side) are left in place.
func displace(p Point, side canvas.Side, offset float64) Point {
	switch side {
	case canvas.SideTop:
		return Point{X: p.X, Y: p.Y - offset}
	case canvas.SideRight:
		return Point{X: p.X + offset, Y: p.Y}
	case canvas.SideBottom:
		return Point{X: p.X, Y: p.Y + offset}
	case canvas.SideLeft:
		return Point{X: p.X - offset, Y: p.Y}
	default:
		return p
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
