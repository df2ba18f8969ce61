package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/errors"
)

func TestAssembleSVG(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), []byte("pixels"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := &canvas.Document{
		Nodes: []canvas.Node{
			{ID: "a", Kind: canvas.KindText, X: 0, Y: 0, Width: 100, Height: 50, Text: "hello\nworld"},
			{ID: "b", Kind: canvas.KindFile, X: 400, Y: 0, Width: 100, Height: 50, File: "pic.png"},
		},
		Edges: []canvas.Edge{
			{FromNode: "a", ToNode: "b"},
		},
	}

	a := newTestAssembler(t, dir)
	out, err := a.AssembleSVG(doc)
	if err != nil {
		t.Fatalf("AssembleSVG() error: %v", err)
	}

	svg := string(out)
	if !strings.Contains(svg, `viewBox="0 0 600 150"`) {
		t.Errorf("viewBox missing or wrong; output starts %q", svg[:80])
	}
	// Only the first line of multi-line text is drawn in the snapshot.
	if !strings.Contains(svg, ">hello</text>") {
		t.Error("text label missing")
	}
	if !strings.Contains(svg, `href="data:image/png;base64,`) {
		t.Error("file node should embed a data URL image")
	}
	if !strings.Contains(svg, `class="edge"`) || !strings.Contains(svg, "M 150,75 C") {
		t.Error("connector path missing or anchored wrong")
	}
	if !strings.Contains(svg, `marker-end="url(#arrowhead)"`) {
		t.Error("default edge should end in an arrow")
	}
}

func TestAssembleSVGSkipsDanglingEdges(t *testing.T) {
	doc := &canvas.Document{
		Nodes: []canvas.Node{
			{ID: "a", Kind: canvas.KindText, Width: 100, Height: 50},
		},
		Edges: []canvas.Edge{
			{FromNode: "a", ToNode: "ghost"},
		},
	}

	a := newTestAssembler(t, t.TempDir())
	out, err := a.AssembleSVG(doc)
	if err != nil {
		t.Fatalf("AssembleSVG() error: %v", err)
	}

	if strings.Contains(string(out), `class="edge"`) {
		t.Error("dangling edge should produce no markup")
	}
	if len(a.Warnings()) != 1 || a.Warnings()[0].Code != errors.ErrCodeDanglingEdge {
		t.Fatalf("warnings = %v, want one DANGLING_EDGE", a.Warnings())
	}
}

func TestAssembleSVGNoArrowForEndNone(t *testing.T) {
	doc := &canvas.Document{
		Nodes: []canvas.Node{
			{ID: "a", Kind: canvas.KindText, X: 0, Y: 0, Width: 100, Height: 50},
			{ID: "b", Kind: canvas.KindText, X: 400, Y: 0, Width: 100, Height: 50},
		},
		Edges: []canvas.Edge{
			{FromNode: "a", ToNode: "b", ToEnd: canvas.EndNone},
		},
	}

	a := newTestAssembler(t, t.TempDir())
	out, err := a.AssembleSVG(doc)
	if err != nil {
		t.Fatalf("AssembleSVG() error: %v", err)
	}
	if strings.Contains(string(out), "marker-end") {
		t.Error("toEnd=none should suppress the arrowhead")
	}
}
