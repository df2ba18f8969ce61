package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/canvaskit/canvashtml/pkg/cache"
)

func writeCanvas(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "test.canvas")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write canvas: %v", err)
	}
	return path
}

func quietLogger() *log.Logger {
	l := log.New(io.Discard)
	return l
}

func TestServeCanvas(t *testing.T) {
	dir := t.TempDir()
	path := writeCanvas(t, dir, `{"nodes":[{"id":"n1","type":"text","text":"hello","x":0,"y":0,"width":200,"height":100}],"edges":[]}`)

	srv := New(path, dir, nil, 0, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hello") {
		t.Error("response missing node text")
	}
}

func TestServeReflectsEdits(t *testing.T) {
	dir := t.TempDir()
	path := writeCanvas(t, dir, `{"nodes":[{"id":"n1","type":"text","text":"before","x":0,"y":0,"width":200,"height":100}],"edges":[]}`)

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	srv := New(path, dir, fc, time.Hour, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	fetch := func() string {
		resp, err := http.Get(ts.URL + "/")
		if err != nil {
			t.Fatalf("GET /: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	if got := fetch(); !strings.Contains(got, "before") {
		t.Error("first response missing original text")
	}

	// A second request with unchanged content should still succeed
	// (served from cache).
	if got := fetch(); !strings.Contains(got, "before") {
		t.Error("cached response missing original text")
	}

	writeCanvas(t, dir, `{"nodes":[{"id":"n1","type":"text","text":"after","x":0,"y":0,"width":200,"height":100}],"edges":[]}`)
	if got := fetch(); !strings.Contains(got, "after") {
		t.Error("edited canvas not reflected in response")
	}
}

func TestServeMissingCanvas(t *testing.T) {
	dir := t.TempDir()
	srv := New(filepath.Join(dir, "nope.canvas"), dir, nil, 0, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

func TestHealthz(t *testing.T) {
	dir := t.TempDir()
	path := writeCanvas(t, dir, `{"nodes":[],"edges":[]}`)

	srv := New(path, dir, nil, 0, quietLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if got := string(body); got != "ok" {
		t.Errorf("body = %q, want %q", got, "ok")
	}
}
