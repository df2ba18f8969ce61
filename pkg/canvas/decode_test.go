package canvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/canvaskit/canvashtml/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "a", "type": "text", "x": 0, "y": 0, "width": 100, "height": 50, "text": "hello"},
			{"id": "b", "type": "file", "x": 200, "y": -40, "width": 300, "height": 200, "file": "images/cat.gif", "color": "4"}
		],
		"edges": [
			{"fromNode": "a", "toNode": "b", "fromSide": "right", "toSide": "left", "toEnd": "arrow"}
		]
	}`

	doc, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if doc.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", doc.NodeCount())
	}
	if doc.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", doc.EdgeCount())
	}

	a := doc.Nodes[0]
	if a.Kind != KindText || a.Text != "hello" {
		t.Errorf("node a = %+v, want text node with text %q", a, "hello")
	}

	b := doc.Nodes[1]
	if b.Kind != KindFile || b.File != "images/cat.gif" {
		t.Errorf("node b = %+v, want file node referencing images/cat.gif", b)
	}
	if b.Y != -40 {
		t.Errorf("node b Y = %v, want -40 (negative coordinates allowed)", b.Y)
	}

	e := doc.Edges[0]
	if e.FromNode != "a" || e.ToNode != "b" || e.FromSide != SideRight || e.ToSide != SideLeft {
		t.Errorf("edge = %+v, want a->b right->left", e)
	}
}

func TestReadJSONUnknownKeysIgnored(t *testing.T) {
	input := `{
		"version": "1.0",
		"metadata": {"created": "yesterday"},
		"nodes": [{"id": "a", "type": "text", "x": 0, "y": 0, "width": 10, "height": 10, "flavor": "vanilla"}],
		"edges": []
	}`

	doc, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if doc.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", doc.NodeCount())
	}
}

func TestReadJSONMissingSections(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if doc.NodeCount() != 0 || doc.EdgeCount() != 0 {
		t.Errorf("empty document should have no nodes or edges, got %d/%d", doc.NodeCount(), doc.EdgeCount())
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"nodes": [`))
	if err == nil {
		t.Fatal("ReadJSON() should fail on malformed JSON")
	}
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("error code = %v, want INVALID_CANVAS", errors.GetCode(err))
	}
}

func TestReadJSONGeneratesMissingIDs(t *testing.T) {
	input := `{"nodes": [
		{"type": "text", "x": 0, "y": 0, "width": 10, "height": 10, "text": "anon"},
		{"id": "named", "type": "text", "x": 0, "y": 0, "width": 10, "height": 10}
	]}`

	doc, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if doc.Nodes[0].ID == "" {
		t.Error("missing id should be generated")
	}
	if got := doc.GeneratedIDs(); len(got) != 1 || got[0] != doc.Nodes[0].ID {
		t.Errorf("GeneratedIDs() = %v, want [%s]", got, doc.Nodes[0].ID)
	}
}

func TestEdgesJSONPreservesInput(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "a", "type": "text", "x": 0, "y": 0, "width": 10, "height": 10},
			{"id": "b", "type": "text", "x": 100, "y": 0, "width": 10, "height": 10}
		],
		"edges": [
			{"id": "e1", "fromNode": "a", "toNode": "b", "styleVariant": "dotted"}
		]
	}`

	doc, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if doc.Edges[0].ID != "e1" {
		t.Errorf("Edge.ID = %q, want %q", doc.Edges[0].ID, "e1")
	}

	out, err := doc.EdgesJSON()
	if err != nil {
		t.Fatalf("EdgesJSON() error: %v", err)
	}
	for _, want := range []string{`"id":"e1"`, `"styleVariant":"dotted"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("EdgesJSON() = %s, want it to contain %s", out, want)
		}
	}
}

func TestEdgesJSONConstructedDocument(t *testing.T) {
	doc := &Document{Edges: []Edge{{FromNode: "a", ToNode: "b"}}}
	out, err := doc.EdgesJSON()
	if err != nil {
		t.Fatalf("EdgesJSON() error: %v", err)
	}
	if !strings.Contains(string(out), `"fromNode":"a"`) {
		t.Errorf("EdgesJSON() = %s, want fromNode a", out)
	}

	empty := &Document{}
	out, err = empty.EdgesJSON()
	if err != nil {
		t.Fatalf("EdgesJSON() error: %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("EdgesJSON() on empty document = %s, want []", out)
	}
}

func TestByIDFirstOccurrenceWins(t *testing.T) {
	doc := &Document{Nodes: []Node{
		{ID: "dup", Text: "first"},
		{ID: "dup", Text: "second"},
		{ID: "other"},
	}}

	idx := doc.ByID()
	if len(idx) != 2 {
		t.Fatalf("ByID() size = %d, want 2", len(idx))
	}
	if idx["dup"].Text != "first" {
		t.Errorf("ByID()[dup].Text = %q, want %q", idx["dup"].Text, "first")
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.canvas")
	content := `{"nodes": [{"id": "a", "type": "text", "x": 0, "y": 0, "width": 10, "height": 10}], "edges": []}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
	if doc.Dir != dir {
		t.Errorf("Dir = %q, want %q", doc.Dir, dir)
	}
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.canvas"))
	if err == nil {
		t.Fatal("ImportFile() should fail for missing file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("error code = %v, want INVALID_CANVAS", errors.GetCode(err))
	}
}
