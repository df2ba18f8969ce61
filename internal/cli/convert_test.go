package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/canvaskit/canvashtml/pkg/errors"
)

const testCanvas = `{
	"nodes": [
		{"id": "n1", "type": "text", "text": "Hello", "x": 0, "y": 0, "width": 200, "height": 100},
		{"id": "n2", "type": "link", "url": "https://example.com", "x": 300, "y": 0, "width": 200, "height": 100}
	],
	"edges": [
		{"fromNode": "n1", "toNode": "n2"}
	]
}`

func quietContext() context.Context {
	return withLogger(context.Background(), newLogger(io.Discard, log.FatalLevel))
}

func writeTestCanvas(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "board.canvas")
	if err := os.WriteFile(path, []byte(testCanvas), 0644); err != nil {
		t.Fatalf("write canvas: %v", err)
	}
	return path
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	input := writeTestCanvas(t, dir)

	opts := &convertOpts{formats: []string{"html"}}
	if err := runConvert(quietContext(), input, opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	out := filepath.Join(dir, "board.html")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "Hello") {
		t.Error("output missing node text")
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("output missing doctype")
	}
}

func TestRunConvertMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	input := writeTestCanvas(t, dir)

	opts := &convertOpts{formats: []string{"html", "svg"}}
	if err := runConvert(quietContext(), input, opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	for _, name := range []string{"board.html", "board.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestRunConvertExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTestCanvas(t, dir)
	out := filepath.Join(dir, "custom", "page.html")

	opts := &convertOpts{output: out, formats: []string{"html"}}
	if err := runConvert(quietContext(), input, opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("explicit output not written: %v", err)
	}
}

func TestRunConvertMissingInput(t *testing.T) {
	opts := &convertOpts{formats: []string{"html"}}
	err := runConvert(quietContext(), filepath.Join(t.TempDir(), "nope.canvas"), opts)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRunConvertBadRootDir(t *testing.T) {
	dir := t.TempDir()
	input := writeTestCanvas(t, dir)

	opts := &convertOpts{rootDir: filepath.Join(dir, "missing"), formats: []string{"html"}}
	err := runConvert(quietContext(), input, opts)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPath)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"derived from input", "", "board.canvas", "html", false, "board.html"},
		{"explicit single", "out.html", "board.canvas", "html", false, "out.html"},
		{"multiple strips extension", "out.html", "board.canvas", "svg", true, "out.svg"},
		{"multiple from input", "", "board.canvas", "svg", true, "board.svg"},
		{"base path kept", "dist/page", "board.canvas", "html", true, "dist/page.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format, tt.multiple)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"html", "svg"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"pdf"}); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestParseFormats(t *testing.T) {
	got := parseFormats("")
	if len(got) != 1 || got[0] != "html" {
		t.Errorf("parseFormats(\"\") = %v, want [html]", got)
	}

	got = parseFormats("html,svg")
	if len(got) != 2 || got[0] != "html" || got[1] != "svg" {
		t.Errorf("parseFormats(\"html,svg\") = %v", got)
	}
}
