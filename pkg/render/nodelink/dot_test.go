package nodelink

import (
	"strings"
	"testing"

	"github.com/canvaskit/canvashtml/pkg/canvas"
)

func testDoc() *canvas.Document {
	return &canvas.Document{
		Nodes: []canvas.Node{
			{ID: "a", Kind: canvas.KindText, Text: "First line\nmore", X: 0, Y: 0, Width: 200, Height: 100},
			{ID: "b", Kind: canvas.KindFile, File: "img/photo.png", X: 300, Y: 0, Width: 200, Height: 100},
			{ID: "c", Kind: canvas.KindLink, URL: "https://example.com", X: 0, Y: 200, Width: 200, Height: 100},
			{ID: "g", Kind: canvas.KindGroup, Label: "Cluster", X: -50, Y: -50, Width: 600, Height: 400},
		},
		Edges: []canvas.Edge{
			{FromNode: "a", ToNode: "b"},
			{FromNode: "b", ToNode: "c", ToEnd: canvas.EndNone},
		},
	}
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(testDoc(), Options{})

	if !strings.HasPrefix(dot, "digraph canvas {") {
		t.Errorf("missing digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`"a" [label="First line"]`,
		`"b" [label="photo.png"]`,
		`"c" [label="https://example.com"]`,
		`"g" [label="Cluster", style="rounded,filled,dashed"`,
		`"a" -> "b";`,
		`"b" -> "c" [arrowhead=none];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testDoc(), Options{Detailed: true})

	if !strings.Contains(dot, "kind: text") {
		t.Errorf("detailed DOT missing kind line:\n%s", dot)
	}
	if !strings.Contains(dot, "at: (0, 0) 200x100") {
		t.Errorf("detailed DOT missing geometry line:\n%s", dot)
	}
}

func TestToDOTSkipsDanglingEdges(t *testing.T) {
	doc := testDoc()
	doc.Edges = append(doc.Edges, canvas.Edge{FromNode: "a", ToNode: "ghost"})

	dot := ToDOT(doc, Options{})
	if strings.Contains(dot, "ghost") {
		t.Errorf("dangling edge should be omitted:\n%s", dot)
	}
}

func TestToDOTEmptyLabelFallsBackToID(t *testing.T) {
	doc := &canvas.Document{
		Nodes: []canvas.Node{{ID: "node-1", Kind: canvas.KindText}},
	}
	dot := ToDOT(doc, Options{})
	if !strings.Contains(dot, `"node-1" [label="node-1"]`) {
		t.Errorf("empty text should fall back to id:\n%s", dot)
	}
}
